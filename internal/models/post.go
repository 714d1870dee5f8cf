// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCaptionLength is the longest caption a post may carry.
const MaxCaptionLength = 2200

// Post represents an image post in the Glimpse application.
// Deleting a post cascades to its likes and comments at the storage layer.
type Post struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"user"`
	ImageURL string    `gorm:"not null" json:"image_url"`
	// ObjectKey is the storage key backing ImageURL; kept so a delete can
	// remove the object without re-deriving the key from the URL.
	ObjectKey string `json:"-"`
	Caption   string `json:"caption"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostStats is the read-only post_stats view: recomputed aggregate counts
// for a single post. Returned by like/unlike so clients can settle their
// optimistic counters against store truth.
type PostStats struct {
	PostID        uuid.UUID `gorm:"column:post_id" json:"post_id"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
}

// TableName maps PostStats onto the post_stats view.
func (PostStats) TableName() string {
	return "post_stats"
}
