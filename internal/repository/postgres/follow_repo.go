package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rplocha4/social-media-backend/internal/domain"
)

type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Create inserts the directed edge. The primary key on
// (follower_id, followed_id) makes a duplicate follow a no-op.
func (r *FollowRepo) Create(ctx context.Context, followerID, followedID int64) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, followerID, followedID)
	return err
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followedID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	_, err := r.pool.Exec(ctx, query, followerID, followedID)
	return err
}

func (r *FollowRepo) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, followerID, followedID).Scan(&exists)
	return exists, err
}

func (r *FollowRepo) ListFollowing(ctx context.Context, followerID int64) ([]domain.FollowEdge, error) {
	query := `
		SELECT f.follower_id, f.followed_id, f.created_at, u.username
		FROM follows f
		JOIN users u ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.FollowEdge
	for rows.Next() {
		var edge domain.FollowEdge
		if err := rows.Scan(&edge.FollowerID, &edge.FollowedID, &edge.CreatedAt, &edge.FollowedUsername); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}
