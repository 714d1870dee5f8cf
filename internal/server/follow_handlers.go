package server

import (
	"context"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type followRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// Follow creates a follow edge to another user. Following yourself is a
// 400, following someone you already follow is a 409.
func (s *Server) Follow(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == uuid.Nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	if err := s.followService.Follow(ctx, user.ID, req.UserID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Following"})
}

// Unfollow removes a follow edge. Removing an absent edge succeeds.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == uuid.Nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	if err := s.followService.Unfollow(ctx, user.ID, req.UserID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowStatus reports both directions of the relation between the
// caller and the user in the path.
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	targetID, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	status, err := s.followService.Status(c.UserContext(), user.ID, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}
