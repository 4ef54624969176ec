package domain

import (
	"time"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	BackgroundURL *string   `json:"background_url,omitempty"`
	Private       bool      `json:"private"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
