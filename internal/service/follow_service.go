package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rplocha4/social-media-backend/internal/domain"
	"github.com/rplocha4/social-media-backend/internal/repository"
)

var ErrCannotFollowSelf = errors.New("cannot follow yourself")

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   Notifier
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *FollowService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Follow creates the directed edge and notifies the followed user. A repeat
// follow is a no-op at the storage layer.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrCannotFollowSelf
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return err
	}
	followed, err := s.userRepo.GetByID(ctx, followedID)
	if err != nil {
		return err
	}
	if follower == nil || followed == nil {
		return ErrUserNotFound
	}

	if err := s.followRepo.Create(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("creating follow edge: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFollow(follower.Username, followed.Username)
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	return s.followRepo.Delete(ctx, followerID, followedID)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID int64) ([]domain.FollowEdge, error) {
	edges, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	if edges == nil {
		edges = []domain.FollowEdge{}
	}
	return edges, nil
}
