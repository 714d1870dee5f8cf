package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetPosts(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("List", mock.Anything, 10, 0, uuid.Nil).
		Return([]*models.Post{{Caption: "sunset"}, {Caption: "coffee"}}, nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Get("/posts", s.GetPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Posts, 2)
	assert.Equal(t, "sunset", payload.Posts[0].Caption)
}

func TestGetPosts_EmptyFeedIsEmptyArray(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("List", mock.Anything, 10, 0, uuid.Nil).Return(nil, nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Get("/posts", s.GetPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(resp.Body)
	assert.JSONEq(t, `{"posts":[]}`, body.String())
}

func TestGetPosts_UserFilter(t *testing.T) {
	author := uuid.New()
	postRepo := new(MockPostRepository)
	postRepo.On("ListByUserID", mock.Anything, author, 10, 0, uuid.Nil).
		Return([]*models.Post{{UserID: author}}, nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Get("/posts", s.GetPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts?userId="+author.String(), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	postRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPosts_InvalidUserFilter(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Get("/posts", s.GetPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts?userId=not-a-uuid", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPosts_AuthedCallerResolvesLikeState(t *testing.T) {
	caller := &models.User{ID: uuid.New(), ExternalID: "auth0|u1"}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByExternalID", mock.Anything, caller.ExternalID).Return(caller, nil)
	postRepo := new(MockPostRepository)
	postRepo.On("List", mock.Anything, 10, 0, caller.ID).
		Return([]*models.Post{{Liked: true}}, nil)

	s := newTestServer(userRepo, postRepo, new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Use(authAs(caller.ExternalID))
	app.Get("/posts", s.GetPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Posts, 1)
	assert.True(t, payload.Posts[0].Liked)
}

func TestGetPost(t *testing.T) {
	postID := uuid.New()
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, postID, uuid.Nil).
		Return(&models.Post{ID: postID, LikesCount: 7}, nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/"+postID.String(), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, postID, post.ID)
	assert.Equal(t, 7, post.LikesCount)
}

func TestGetPost_InvalidID(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/nope", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func multipartImage(t *testing.T, contentType string, data []byte, caption string) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	if caption != "" {
		require.NoError(t, w.WriteField("caption", caption))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestCreatePost(t *testing.T) {
	caller := &models.User{ID: uuid.New(), ExternalID: "auth0|u1"}
	created := uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByExternalID", mock.Anything, caller.ExternalID).Return(caller, nil)

	store := new(MockObjectStore)
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
		Return("https://bucket.s3.us-east-1.amazonaws.com/key", nil)

	postRepo := new(MockPostRepository)
	postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.UserID == caller.ID && p.Caption == "first light"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Post).ID = created
	}).Return(nil)
	postRepo.On("GetByID", mock.Anything, created, caller.ID).
		Return(&models.Post{ID: created, UserID: caller.ID, Caption: "first light"}, nil)

	s := newTestServer(userRepo, postRepo, new(MockCommentRepository), new(MockFollowRepository), store)
	app := fiber.New()
	app.Use(authAs(caller.ExternalID))
	app.Post("/posts", s.CreatePost)

	body, contentType := multipartImage(t, "image/jpeg", []byte("fake image bytes"), "first light")
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, created, post.ID)
}

func TestCreatePost_MissingImage(t *testing.T) {
	caller := &models.User{ID: uuid.New(), ExternalID: "auth0|u1"}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByExternalID", mock.Anything, caller.ExternalID).Return(caller, nil)

	s := newTestServer(userRepo, new(MockPostRepository), new(MockCommentRepository), new(MockFollowRepository), new(MockObjectStore))
	app := fiber.New()
	app.Use(authAs(caller.ExternalID))
	app.Post("/posts", s.CreatePost)

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("caption", "no image here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreatePost_UnsupportedType(t *testing.T) {
	caller := &models.User{ID: uuid.New(), ExternalID: "auth0|u1"}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByExternalID", mock.Anything, caller.ExternalID).Return(caller, nil)
	store := new(MockObjectStore)

	s := newTestServer(userRepo, new(MockPostRepository), new(MockCommentRepository), new(MockFollowRepository), store)
	app := fiber.New()
	app.Use(authAs(caller.ExternalID))
	app.Post("/posts", s.CreatePost)

	body, contentType := multipartImage(t, "text/plain", []byte("definitely not a picture"), "")
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost(t *testing.T) {
	caller := &models.User{ID: uuid.New(), ExternalID: "auth0|u1"}
	postID := uuid.New()

	tests := []struct {
		name           string
		owner          uuid.UUID
		expectedStatus int
	}{
		{"Owner can delete", caller.ID, http.StatusOK},
		{"Stranger is forbidden", uuid.New(), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			userRepo.On("GetByExternalID", mock.Anything, caller.ExternalID).Return(caller, nil)
			store := new(MockObjectStore)
			store.On("Delete", mock.Anything, "u1/posts/123_photo.jpg").Return(nil)
			postRepo := new(MockPostRepository)
			postRepo.On("GetByID", mock.Anything, postID, uuid.Nil).
				Return(&models.Post{ID: postID, UserID: tt.owner, ObjectKey: "u1/posts/123_photo.jpg"}, nil)
			postRepo.On("Delete", mock.Anything, postID).Return(nil)

			s := newTestServer(userRepo, postRepo, new(MockCommentRepository), new(MockFollowRepository), store)
			app := fiber.New()
			app.Use(authAs(caller.ExternalID))
			app.Delete("/posts/:id", s.DeletePost)

			resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/"+postID.String(), nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusForbidden {
				postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}
