package server

import (
	"glimpse/internal/config"
	"glimpse/internal/repository"
	"glimpse/internal/service"
	"glimpse/internal/storage"

	"github.com/gofiber/fiber/v2"
)

const testMaxUploadBytes = 5 * 1024 * 1024

// newTestServer wires a Server from mocked repositories, skipping DB, Redis
// and AWS entirely.
func newTestServer(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	store storage.ObjectStore,
) *Server {
	s := &Server{
		config:      &config.Config{JWTSecret: "test-secret", JWTIssuer: "glimpse-auth"},
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		store:       store,
	}
	s.postService = service.NewPostService(postRepo, store, testMaxUploadBytes)
	s.commentService = service.NewCommentService(commentRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)
	s.userService = service.NewUserService(userRepo, followRepo)
	return s
}

// authAs simulates a validated token for the given external identity.
func authAs(externalID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("externalID", externalID)
		return c.Next()
	}
}
