package domain

import (
	"time"
)

// FollowEdge is the directed follower → followed relation, unique per
// ordered pair.
type FollowEdge struct {
	FollowerID int64     `json:"follower_id"`
	FollowedID int64     `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
	// Joined fields
	FollowedUsername string `json:"followed_username,omitempty"`
}
