package server

import (
	"context"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type likeRequest struct {
	PostID uuid.UUID `json:"post_id"`
}

// LikePost records a like and returns the settled counts. Liking an
// already-liked post succeeds without change, so a client retry or a race
// between two taps never errors.
func (s *Server) LikePost(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil || req.PostID == uuid.Nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	result, err := s.postService.LikePost(ctx, user.ID, req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// UnlikePost removes a like and returns the settled counts. Removing an
// absent like is a no-op success.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil || req.PostID == uuid.Nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	result, err := s.postService.UnlikePost(ctx, user.ID, req.PostID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
