package service

import (
	"context"
	"errors"

	"glimpse/internal/models"
	"glimpse/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// FollowStatus describes the relation between the caller and another user.
type FollowStatus struct {
	IsFollowing  bool `json:"is_following"`
	IsFollowedBy bool `json:"is_followed_by"`
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates a follow edge. Following yourself is a validation error,
// following someone twice is a conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return err
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Already following this user")
		}
		if errors.Is(err, repository.ErrSelfFollow) {
			return models.NewValidationError("You cannot follow yourself")
		}
		return err
	}
	return nil
}

// Unfollow removes a follow edge. Removing an absent edge is a no-op success,
// mirroring the idempotent unlike.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	_, err := s.followRepo.Delete(ctx, followerID, followingID)
	return err
}

// Status reports both directions of the relation between caller and target.
func (s *FollowService) Status(ctx context.Context, callerID, targetID uuid.UUID) (*FollowStatus, error) {
	isFollowing, err := s.followRepo.Exists(ctx, callerID, targetID)
	if err != nil {
		return nil, err
	}
	isFollowedBy, err := s.followRepo.Exists(ctx, targetID, callerID)
	if err != nil {
		return nil, err
	}
	return &FollowStatus{IsFollowing: isFollowing, IsFollowedBy: isFollowedBy}, nil
}
