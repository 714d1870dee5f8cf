package repository

import (
	"context"
	"errors"
	"strings"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSelfFollow is returned when the storage-level self-follow guard fires.
var ErrSelfFollow = errors.New("cannot follow yourself")

// FollowRepository defines persistence operations for follow relationships.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the follow edge. gorm.ErrDuplicatedKey surfaces for an
// existing pair; ErrSelfFollow surfaces when the check constraint rejects
// follower == following.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// SQLSTATE 23514: check_violation from follows_no_self_follow.
		if errors.Is(err, gorm.ErrCheckConstraintViolated) || strings.Contains(err.Error(), "23514") {
			return ErrSelfFollow
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateUserStats(ctx, follow.FollowerID)
	cache.InvalidateUserStats(ctx, follow.FollowingID)
	return nil
}

// Delete removes the follow edge and reports whether a row existed.
func (r *followRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	cache.InvalidateUserStats(ctx, followerID)
	cache.InvalidateUserStats(ctx, followingID)
	return true, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
