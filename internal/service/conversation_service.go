package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rplocha4/social-media-backend/internal/domain"
	"github.com/rplocha4/social-media-backend/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCannotMessageSelf = errors.New("cannot start a conversation with yourself")
)

type ConversationService struct {
	convRepo repository.ConversationRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewConversationService(convRepo repository.ConversationRepository, userRepo repository.UserRepository) *ConversationService {
	return &ConversationService{
		convRepo: convRepo,
		userRepo: userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *ConversationService) SetNotifier(n Notifier) {
	s.notifier = n
}

// SendMessage resolves the pair's conversation and appends one message to
// it. The repository's FindOrCreate is atomic, so concurrent first messages
// between a fresh pair land in the same conversation.
func (s *ConversationService) SendMessage(ctx context.Context, senderID, receiverID int64, body string) (*domain.Message, error) {
	if senderID == receiverID {
		return nil, ErrCannotMessageSelf
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if sender == nil || receiver == nil {
		return nil, ErrUserNotFound
	}

	convID, err := s.convRepo.FindOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("resolving conversation: %w", err)
	}

	msg := &domain.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Body:           body,
		SenderUsername: sender.Username,
	}
	if err := s.convRepo.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyMessage(sender.Username, receiver.Username, body)
	}

	return msg, nil
}

// ListMessagesBetween returns the pair's thread oldest first, or an empty
// slice when the pair has no conversation yet.
func (s *ConversationService) ListMessagesBetween(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	conv, err := s.convRepo.GetByUsers(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return []domain.Message{}, nil
	}

	messages, err := s.convRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// ListPeers returns every peer the user has a conversation with, one entry
// per distinct peer.
func (s *ConversationService) ListPeers(ctx context.Context, userID int64) ([]domain.ConversationPeer, error) {
	peers, err := s.convRepo.ListPeers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if peers == nil {
		peers = []domain.ConversationPeer{}
	}
	return peers, nil
}
