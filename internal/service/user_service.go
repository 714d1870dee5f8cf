package service

import (
	"context"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// SyncUser upserts the caller's row from their identity provider profile.
// Called on first sign-in and safe to repeat.
func (s *UserService) SyncUser(ctx context.Context, externalID, name string) (*models.User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, models.NewValidationError("External ID is required")
	}

	user := &models.User{
		ExternalID: externalID,
		Name:       strings.TrimSpace(name),
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResolveExternal maps an external identity to its internal user row.
// Returns nil, nil when the identity has never synced.
func (s *UserService) ResolveExternal(ctx context.Context, externalID string) (*models.User, error) {
	return s.userRepo.GetByExternalID(ctx, externalID)
}

// ResolveRef maps a tagged user reference to its internal user row. The tag
// decides the lookup; the value is never sniffed again.
func (s *UserService) ResolveRef(ctx context.Context, ref models.UserRef) (*models.User, error) {
	switch ref.Kind {
	case models.InternalRef:
		return s.userRepo.GetByID(ctx, ref.Internal)
	case models.ExternalRef:
		user, err := s.userRepo.GetByExternalID(ctx, ref.External)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, models.NewNotFoundError("User", ref.External)
		}
		return user, nil
	default:
		return nil, models.NewValidationError("Invalid user reference")
	}
}

// GetProfile returns a user's stats plus the caller's follow relation to
// them. callerID may be uuid.Nil for anonymous reads.
func (s *UserService) GetProfile(ctx context.Context, ref models.UserRef, callerID uuid.UUID) (*models.UserProfile, error) {
	user, err := s.ResolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	stats, err := s.userRepo.GetStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{UserStats: *stats}
	if callerID != uuid.Nil && callerID != user.ID {
		isFollowing, err := s.followRepo.Exists(ctx, callerID, user.ID)
		if err != nil {
			return nil, err
		}
		isFollowedBy, err := s.followRepo.Exists(ctx, user.ID, callerID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = isFollowing
		profile.IsFollowedBy = isFollowedBy
	}
	return profile, nil
}
