package repository

import (
	"context"

	"github.com/rplocha4/social-media-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ConversationRepository interface {
	// FindOrCreate resolves the unordered pair (userA, userB) to its single
	// conversation id, creating the row atomically when none exists.
	FindOrCreate(ctx context.Context, userA, userB int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetByUsers(ctx context.Context, userA, userB int64) (*domain.Conversation, error)
	ListPeers(ctx context.Context, userID int64) ([]domain.ConversationPeer, error)
	AppendMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID int64) ([]domain.Message, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetAnnotatedByID(ctx context.Context, id, viewerID int64) (*domain.AnnotatedPost, error)
	ListFeed(ctx context.Context, viewerID int64) ([]domain.AnnotatedPost, error)
	ListByAuthor(ctx context.Context, authorID, viewerID int64) ([]domain.AnnotatedPost, error)
	AddLike(ctx context.Context, postID, userID int64) error
	ListLikes(ctx context.Context, postID int64) ([]domain.Like, error)
	AddComment(ctx context.Context, comment *domain.Comment) error
	ListComments(ctx context.Context, postID int64) ([]domain.Comment, error)
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	ListFollowing(ctx context.Context, followerID int64) ([]domain.FollowEdge, error)
}
