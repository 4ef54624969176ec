package domain

import (
	"time"
)

type Post struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnotatedPost is a post as the feed presents it: author snippet plus
// engagement counts derived at query time. Counts are never stored.
type AnnotatedPost struct {
	Post
	AuthorUsername  string  `json:"author_username"`
	AuthorAvatarURL *string `json:"author_avatar_url,omitempty"`
	LikeCount       int     `json:"like_count"`
	CommentCount    int     `json:"comment_count"`
	LikedByViewer   bool    `json:"liked_by_viewer"`
}

type Like struct {
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields
	AuthorUsername string `json:"author_username,omitempty"`
}
