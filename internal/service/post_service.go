// Package service contains the application's business logic.
package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/storage"

	"github.com/google/uuid"
)

// allowedImageTypes are the upload MIME types accepted for post images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type PostService struct {
	postRepo       repository.PostRepository
	store          storage.ObjectStore
	maxUploadBytes int64
	now            func() time.Time
}

type CreatePostInput struct {
	UserID     uuid.UUID
	ExternalID string
	Caption    string
	Filename   string
	// ContentType is the declared MIME type of the upload.
	ContentType string
	Size        int64
	Body        io.Reader
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	UserID        *uuid.UUID
	CurrentUserID uuid.UUID
}

// LikeResult carries the settled store truth after a like/unlike so callers
// can reconcile their optimistic counters.
type LikeResult struct {
	PostID        uuid.UUID `json:"post_id"`
	Liked         bool      `json:"is_liked"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
}

func NewPostService(postRepo repository.PostRepository, store storage.ObjectStore, maxUploadBytes int64) *PostService {
	return &PostService{
		postRepo:       postRepo,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	caption := strings.TrimSpace(in.Caption)
	if utf8.RuneCountInString(caption) > models.MaxCaptionLength {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}
	if in.Body == nil || in.Size == 0 {
		return nil, models.NewValidationError("Image file is required")
	}
	if in.Size > s.maxUploadBytes {
		return nil, models.NewValidationError("Image too large (max 5MB)")
	}
	if !allowedImageTypes[strings.ToLower(in.ContentType)] {
		return nil, models.NewValidationError("Unsupported image type (jpeg, png, gif, webp)")
	}

	key := storage.BuildObjectKey(in.ExternalID, in.Filename, s.now())
	url, err := s.store.Put(ctx, key, in.Body, in.ContentType)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	post := &models.Post{
		UserID:    in.UserID,
		ImageURL:  url,
		ObjectKey: key,
		Caption:   caption,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		// The object is orphaned if this cleanup fails; log and move on,
		// the caller only needs to know the post was not created.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to clean up orphaned upload",
				slog.String("key", key),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	if in.UserID != nil {
		return s.postRepo.ListByUserID(ctx, *in.UserID, limit, offset, in.CurrentUserID)
	}
	return s.postRepo.List(ctx, limit, offset, in.CurrentUserID)
}

func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uuid.UUID) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// DeletePost removes a post after verifying ownership. The stored image is
// deleted best-effort; the row delete cascades likes and comments.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID, uuid.Nil)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if post.ObjectKey != "" {
		if err := s.store.Delete(ctx, post.ObjectKey); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete post image from storage",
				slog.String("key", post.ObjectKey),
				slog.String("error", err.Error()),
			)
		}
	}

	return s.postRepo.Delete(ctx, postID)
}

// LikePost records a like. Liking an already-liked post is a no-op success.
func (s *PostService) LikePost(ctx context.Context, userID, postID uuid.UUID) (*LikeResult, error) {
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.likeResult(ctx, postID, true)
}

// UnlikePost removes a like. Removing an absent like is a no-op success.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uuid.UUID) (*LikeResult, error) {
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.likeResult(ctx, postID, false)
}

func (s *PostService) likeResult(ctx context.Context, postID uuid.UUID, liked bool) (*LikeResult, error) {
	stats, err := s.postRepo.Stats(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{
		PostID:        postID,
		Liked:         liked,
		LikesCount:    stats.LikesCount,
		CommentsCount: stats.CommentsCount,
	}, nil
}
