package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rplocha4/social-media-backend/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// canonicalPair orders an unordered user pair so (a,b) and (b,a) hit the
// same row. Every query in this repo goes through it.
func canonicalPair(userA, userB int64) (int64, int64) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// FindOrCreate is a single atomic statement: the unique index on
// (user_a, user_b) plus ON CONFLICT closes the check-then-insert race, so
// two callers racing on a fresh pair both get the same id. The no-op
// DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *ConversationRepo) FindOrCreate(ctx context.Context, userA, userB int64) (int64, error) {
	a, b := canonicalPair(userA, userB)
	query := `
		INSERT INTO conversations (user_a, user_b)
		VALUES ($1, $2)
		ON CONFLICT (user_a, user_b) DO UPDATE SET user_a = EXCLUDED.user_a
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query, a, b).Scan(&id)
	return id, err
}

func (r *ConversationRepo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	query := `
		SELECT id, user_a, user_b, created_at
		FROM conversations
		WHERE id = $1`
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&conv.ID, &conv.UserA, &conv.UserB, &conv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &conv, err
}

func (r *ConversationRepo) GetByUsers(ctx context.Context, userA, userB int64) (*domain.Conversation, error) {
	a, b := canonicalPair(userA, userB)
	query := `
		SELECT id, user_a, user_b, created_at
		FROM conversations
		WHERE user_a = $1 AND user_b = $2
		ORDER BY id
		LIMIT 1`
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, a, b).Scan(
		&conv.ID, &conv.UserA, &conv.UserB, &conv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &conv, err
}

// ListPeers returns one row per distinct peer. Grouping on the peer id keeps
// the listing correct even against historical duplicate pair rows: the
// lowest conversation id wins.
func (r *ConversationRepo) ListPeers(ctx context.Context, userID int64) ([]domain.ConversationPeer, error) {
	query := `
		SELECT MIN(c.id) AS conversation_id,
			u.id, u.username, u.avatar_url
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.user_a = $1 THEN c.user_b ELSE c.user_a END
		WHERE c.user_a = $1 OR c.user_b = $1
		GROUP BY u.id, u.username, u.avatar_url
		ORDER BY MIN(c.id) DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peers []domain.ConversationPeer
	for rows.Next() {
		var p domain.ConversationPeer
		if err := rows.Scan(&p.ConversationID, &p.PeerID, &p.PeerUsername, &p.PeerAvatarURL); err != nil {
			return nil, err
		}
		peers = append(peers, p)
	}
	return peers, rows.Err()
}

func (r *ConversationRepo) AppendMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (conversation_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.ConversationID, msg.SenderID, msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// ListMessages returns the whole thread oldest first. The id tiebreak keeps
// the order stable when two messages share a created_at.
func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.body, m.created_at, u.username
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC, m.id ASC`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body,
			&msg.CreatedAt, &msg.SenderUsername,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
