package service

import (
	"context"
	"io"

	"glimpse/internal/models"

	"github.com/google/uuid"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uuid.UUID, uuid.UUID) (*models.Post, error)
	listFn         func(context.Context, int, int, uuid.UUID) ([]*models.Post, error)
	listByUserIDFn func(context.Context, uuid.UUID, int, int, uuid.UUID) ([]*models.Post, error)
	deleteFn       func(context.Context, uuid.UUID) error
	statsFn        func(context.Context, uuid.UUID) (*models.PostStats, error)
	likeFn         func(context.Context, uuid.UUID, uuid.UUID) error
	unlikeFn       func(context.Context, uuid.UUID, uuid.UUID) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uuid.UUID) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uuid.UUID) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int, currentUserID uuid.UUID) ([]*models.Post, error) {
	return s.listByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Stats(ctx context.Context, id uuid.UUID) (*models.PostStats, error) {
	return s.statsFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uuid.UUID) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uuid.UUID) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uuid.UUID) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int, _ uuid.UUID) ([]*models.Post, error) { return nil, nil },
		listByUserIDFn: func(_ context.Context, _ uuid.UUID, _, _ int, _ uuid.UUID) ([]*models.Post, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		statsFn: func(_ context.Context, id uuid.UUID) (*models.PostStats, error) {
			return &models.PostStats{PostID: id}, nil
		},
		likeFn:   func(_ context.Context, _, _ uuid.UUID) error { return nil },
		unlikeFn: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uuid.UUID) (*models.Comment, error)
	listByPostFn func(context.Context, uuid.UUID, int) ([]*models.Comment, error)
	deleteFn     func(context.Context, uuid.UUID) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uuid.UUID, limit int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ uuid.UUID, _ int) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn func(context.Context, *models.Follow) error
	deleteFn func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	existsFn func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn: func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		existsFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn         func(context.Context, uuid.UUID) (*models.User, error)
	getByExternalIDFn func(context.Context, string) (*models.User, error)
	upsertFn          func(context.Context, *models.User) error
	getStatsFn        func(context.Context, uuid.UUID) (*models.UserStats, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.getByExternalIDFn(ctx, externalID)
}
func (s *userRepoStub) Upsert(ctx context.Context, user *models.User) error {
	return s.upsertFn(ctx, user)
}
func (s *userRepoStub) GetStats(ctx context.Context, id uuid.UUID) (*models.UserStats, error) {
	return s.getStatsFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByExternalIDFn: func(_ context.Context, externalID string) (*models.User, error) {
			return &models.User{ID: uuid.New(), ExternalID: externalID}, nil
		},
		upsertFn: func(_ context.Context, _ *models.User) error { return nil },
		getStatsFn: func(_ context.Context, id uuid.UUID) (*models.UserStats, error) {
			return &models.UserStats{UserID: id}, nil
		},
	}
}

// objectStoreStub is a stub for storage.ObjectStore.
type objectStoreStub struct {
	putFn    func(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	deleteFn func(ctx context.Context, key string) error
}

func (s *objectStoreStub) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return s.putFn(ctx, key, body, contentType)
}

func (s *objectStoreStub) Delete(ctx context.Context, key string) error {
	return s.deleteFn(ctx, key)
}

func noopObjectStore() *objectStoreStub {
	return &objectStoreStub{
		putFn: func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
			return "https://example-bucket.s3.us-east-1.amazonaws.com/" + key, nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}
