package models

import (
	"time"

	"github.com/google/uuid"
)

// Like represents a user's like on a post.
// The combination of PostID and UserID must be unique; duplicate inserts are
// idempotent no-ops, enforced with ON CONFLICT DO NOTHING at the repository.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
