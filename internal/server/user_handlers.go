package server

import (
	"context"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

type syncUserRequest struct {
	Name string `json:"name"`
}

// GetUserProfile returns a user's stats and, for authenticated callers, the
// follow relation. The path ID may be an internal UUID or an external
// identity; the distinction is resolved here, once, into a tagged reference.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ref, err := models.ParseUserRef(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.userService.GetProfile(c.UserContext(), ref, s.currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// SyncUser upserts the caller's user row from their identity provider
// profile. Clients call this once after sign-in; repeating it is safe.
func (s *Server) SyncUser(c *fiber.Ctx) error {
	externalID, _ := c.Locals("externalID").(string)

	var req syncUserRequest
	// An empty body is fine; the name is optional.
	_ = c.BodyParser(&req)

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	user, err := s.userService.SyncUser(ctx, externalID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
