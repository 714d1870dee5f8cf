// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the Glimpse application. Authentication is owned
// by the external identity provider; ExternalID is the provider's user ID.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;not null" json:"external_id"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserStats is the read-only user_stats view: a user joined with its
// recomputed aggregate counts. Never written by the application.
type UserStats struct {
	UserID         uuid.UUID `gorm:"column:user_id" json:"id"`
	ExternalID     string    `json:"external_id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	PostsCount     int       `json:"posts_count"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
}

// TableName maps UserStats onto the user_stats view.
func (UserStats) TableName() string {
	return "user_stats"
}

// UserProfile is the profile payload: stats plus the caller's follow
// relation to this user. IsFollowing/IsFollowedBy are snapshots valid at
// read time, like every other counter in the system.
type UserProfile struct {
	UserStats
	IsFollowing  bool `json:"is_following"`
	IsFollowedBy bool `json:"is_followed_by"`
}
