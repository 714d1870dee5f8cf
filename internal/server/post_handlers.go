package server

import (
	"context"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetPosts returns a feed page, newest first. An authenticated caller gets
// is_liked resolved; an optional userId query filters to one author's posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	in := service.ListPostsInput{
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: s.currentUserID(c),
	}
	if raw := c.Query("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid userId"))
		}
		in.UserID = &userID
	}

	posts, err := s.postService.ListPosts(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost returns a single post with its counts and the caller's like state.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, s.currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost accepts a multipart upload: an image file plus an optional
// caption field.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:      user.ID,
		ExternalID:  user.ExternalID,
		Caption:     c.FormValue("caption"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost deletes the caller's own post; likes and comments cascade.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), mutationTimeout)
	defer cancel()

	if err := s.postService.DeletePost(ctx, user.ID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
