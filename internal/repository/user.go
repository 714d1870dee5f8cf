// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	GetStats(ctx context.Context, id uuid.UUID) (*models.UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByExternalID returns nil, nil when no row exists so callers can
// distinguish "unknown identity" from a storage failure.
func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Upsert inserts the user or, when the external identity already has a row,
// refreshes the display name. The existing row's internal ID is loaded back
// into user.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewInternalError(err)
	}

	var existing models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", user.ExternalID).First(&existing).Error; err != nil {
		return models.NewInternalError(err)
	}
	if user.Name != "" && user.Name != existing.Name {
		if err := r.db.WithContext(ctx).Model(&existing).Update("name", user.Name).Error; err != nil {
			return models.NewInternalError(err)
		}
		existing.Name = user.Name
	}
	*user = existing

	cache.Invalidate(ctx, cache.ProfileKey(user.ExternalID))
	return nil
}

func (r *userRepository) GetStats(ctx context.Context, id uuid.UUID) (*models.UserStats, error) {
	var stats models.UserStats
	key := cache.UserStatsKey(id)

	err := cache.CacheAside(ctx, key, &stats, cache.UserStatsTTL, func() error {
		if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&stats).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
