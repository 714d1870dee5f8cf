package server

import (
	"context"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type createCommentRequest struct {
	PostID  uuid.UUID `json:"post_id"`
	Content string    `json:"content"`
}

type deleteCommentRequest struct {
	CommentID uuid.UUID `json:"comment_id"`
}

// GetComments returns a post's comments oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Query("post_id"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	limit := c.QueryInt("limit", 50)
	comments, err := s.commentService.ListComments(c.UserContext(), postID, limit)
	if err != nil {
		return respondError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment stores a comment and returns it with the author attached.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil || req.PostID == uuid.Nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	comment, err := s.commentService.CreateComment(ctx, user.ID, req.PostID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment removes the caller's own comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req deleteCommentRequest
	if err := c.BodyParser(&req); err != nil || req.CommentID == uuid.Nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("comment_id is required"))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	if err := s.commentService.DeleteComment(ctx, user.ID, req.CommentID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
