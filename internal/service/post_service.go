package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rplocha4/social-media-backend/internal/domain"
	"github.com/rplocha4/social-media-backend/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *PostService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *PostService) CreatePost(ctx context.Context, authorID int64, content string, imageURL *string) (*domain.Post, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	post := &domain.Post{
		AuthorID: authorID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id, viewerID int64) (*domain.AnnotatedPost, error) {
	post, err := s.postRepo.GetAnnotatedByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// LikePost records a like and notifies the post's author. Liking the same
// post twice is a no-op at the storage layer.
func (s *PostService) LikePost(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetAnnotatedByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if actor == nil {
		return ErrUserNotFound
	}

	if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
		return fmt.Errorf("adding like: %w", err)
	}

	if s.notifier != nil && actor.ID != post.AuthorID {
		s.notifier.NotifyLike(actor.Username, post.AuthorUsername)
	}
	return nil
}

func (s *PostService) ListLikes(ctx context.Context, postID int64) ([]domain.Like, error) {
	likes, err := s.postRepo.ListLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []domain.Like{}
	}
	return likes, nil
}

func (s *PostService) AddComment(ctx context.Context, postID, authorID int64, content string) (*domain.Comment, error) {
	post, err := s.postRepo.GetAnnotatedByID(ctx, postID, authorID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	actor, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	comment := &domain.Comment{
		PostID:         postID,
		AuthorID:       authorID,
		Content:        content,
		AuthorUsername: actor.Username,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	if s.notifier != nil && actor.ID != post.AuthorID {
		s.notifier.NotifyComment(actor.Username, post.AuthorUsername)
	}
	return comment, nil
}

func (s *PostService) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}
