package service

import (
	"context"

	"github.com/rplocha4/social-media-backend/internal/domain"
	"github.com/rplocha4/social-media-backend/internal/repository"
)

type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// ComputeFeed returns posts authored by the viewer or by authors the viewer
// follows, newest first, with engagement counts derived at query time. An
// unknown viewer gets an empty feed, not an error.
func (s *FeedService) ComputeFeed(ctx context.Context, viewerID int64) ([]domain.AnnotatedPost, error) {
	posts, err := s.postRepo.ListFeed(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.AnnotatedPost{}
	}
	return posts, nil
}

// ComputeProfileFeed returns one author's posts, newest first, annotated the
// same way as the main feed. viewerID controls liked_by_viewer; zero means
// no viewer. An unknown username gets an empty feed.
func (s *FeedService) ComputeProfileFeed(ctx context.Context, authorUsername string, viewerID int64) ([]domain.AnnotatedPost, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return []domain.AnnotatedPost{}, nil
	}

	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, viewerID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.AnnotatedPost{}
	}
	return posts, nil
}
