package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rplocha4/social-media-backend/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

// annotatedColumns is the shared projection for feed queries: author
// snippet plus engagement counts computed at query time. Counts are never
// stored or cached, so every read reflects the latest committed state.
// $1 is always the viewer id (0 when there is no viewer).
const annotatedColumns = `
	p.id, p.author_id, p.content, p.image_url, p.created_at,
	u.username, u.avatar_url,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
	EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1) AS liked_by_viewer`

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (author_id, content, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		post.AuthorID, post.Content, post.ImageURL,
	).Scan(&post.ID, &post.CreatedAt)
}

func (r *PostRepo) GetAnnotatedByID(ctx context.Context, id, viewerID int64) (*domain.AnnotatedPost, error) {
	query := `
		SELECT ` + annotatedColumns + `
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $2`
	var post domain.AnnotatedPost
	err := r.pool.QueryRow(ctx, query, viewerID, id).Scan(
		&post.ID, &post.AuthorID, &post.Content, &post.ImageURL, &post.CreatedAt,
		&post.AuthorUsername, &post.AuthorAvatarURL,
		&post.LikeCount, &post.CommentCount, &post.LikedByViewer,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &post, err
}

// ListFeed returns posts authored by the viewer or by anyone the viewer
// follows, newest first.
func (r *PostRepo) ListFeed(ctx context.Context, viewerID int64) ([]domain.AnnotatedPost, error) {
	query := `
		SELECT ` + annotatedColumns + `
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.author_id = $1
			OR p.author_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC, p.id DESC`
	return r.queryAnnotated(ctx, query, viewerID)
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID, viewerID int64) ([]domain.AnnotatedPost, error) {
	query := `
		SELECT ` + annotatedColumns + `
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.author_id = $2
		ORDER BY p.created_at DESC, p.id DESC`
	return r.queryAnnotated(ctx, query, viewerID, authorID)
}

func (r *PostRepo) queryAnnotated(ctx context.Context, query string, args ...any) ([]domain.AnnotatedPost, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.AnnotatedPost
	for rows.Next() {
		var post domain.AnnotatedPost
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Content, &post.ImageURL, &post.CreatedAt,
			&post.AuthorUsername, &post.AuthorAvatarURL,
			&post.LikeCount, &post.CommentCount, &post.LikedByViewer,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// AddLike is idempotent: the primary key on (post_id, user_id) makes a
// repeat like a no-op instead of an error.
func (r *PostRepo) AddLike(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, postID, userID)
	return err
}

func (r *PostRepo) ListLikes(ctx context.Context, postID int64) ([]domain.Like, error) {
	query := `
		SELECT post_id, user_id, created_at
		FROM likes
		WHERE post_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []domain.Like
	for rows.Next() {
		var like domain.Like
		if err := rows.Scan(&like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}

func (r *PostRepo) AddComment(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.PostID, comment.AuthorID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *PostRepo) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, u.username
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt, &comment.AuthorUsername,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
