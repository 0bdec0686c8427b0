package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"Postwall/internal/api/middleware"
	"Postwall/internal/auth"
	"Postwall/internal/core/posts"
	"Postwall/internal/core/users"
	"Postwall/internal/db/memory"
)

type testServer struct {
	handler http.Handler
	store   *memory.PostStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-test-secret", time.Hour)
	require.NoError(t, err)

	store := memory.NewPostStore()
	userService := users.NewUserService(memory.NewUserStore(), tokens, bcrypt.MinCost, nil)

	return &testServer{
		store: store,
		handler: NewRouter(RouterConfig{
			PostService:    posts.NewPostService(store, nil),
			UserService:    userService,
			Tokens:         tokens,
			RateLimiter:    middleware.NewRateLimiter(1000, 1000),
			AllowedOrigins: []string{"*"},
			RequestTimeout: 5 * time.Second,
		}),
	}
}

func (s *testServer) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/registration", "", users.RegisterRequest{Username: username, Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp users.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodePost(t *testing.T, w *httptest.ResponseRecorder) *posts.Post {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p posts.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	return &p
}

func decodePosts(t *testing.T, w *httptest.ResponseRecorder) []*posts.Post {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []*posts.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	return items
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_PostsRequireAuth(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/posts", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/posts", "garbage", nil).Code)
}

func TestRouter_AccountFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")

	w := s.do(t, http.MethodPost, "/api/v1/registration", "", users.RegisterRequest{Username: "alice", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/authentication", "", users.AuthenticateRequest{Username: "alice", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me users.UserResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&me))
	assert.Equal(t, "alice", me.Username)

	w = s.do(t, http.MethodPut, "/api/v1/me/password", token, users.ChangePasswordRequest{Old: "secret1", New: "secret2"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/authentication", "", users.AuthenticateRequest{Username: "alice", Password: "secret2"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PostLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")

	created := decodePost(t, s.do(t, http.MethodPost, "/api/v1/posts", alice, posts.PostRequest{
		ID: posts.NewPostID, Author: "alice", Content: "first", Created: 1000,
	}))
	assert.Equal(t, int64(0), created.ID)
	assert.Equal(t, posts.PostTypePost, created.Type)

	// bob cannot write under alice's name
	w := s.do(t, http.MethodPost, "/api/v1/posts", bob, posts.PostRequest{ID: posts.NewPostID, Author: "alice", Content: "spoof"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	edited := decodePost(t, s.do(t, http.MethodPost, "/api/v1/posts", alice, posts.PostRequest{
		ID: created.ID, Author: "alice", Content: "edited", Created: 1000,
	}))
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "edited", edited.Content)

	liked := decodePost(t, s.do(t, http.MethodPost, "/api/v1/posts/0/likes", bob, nil))
	assert.Equal(t, 1, liked.LikeCount)
	disliked := decodePost(t, s.do(t, http.MethodDelete, "/api/v1/posts/0/likes", bob, nil))
	assert.Equal(t, 0, disliked.LikeCount)

	repost := decodePost(t, s.do(t, http.MethodPost, "/api/v1/posts/0/reposts", bob, posts.RepostRequest{Content: "look"}))
	assert.Equal(t, "bob", repost.Author)
	assert.Equal(t, posts.PostTypeRepost, repost.Type)
	require.NotNil(t, repost.Source)
	assert.Equal(t, "edited", repost.Source.Content)

	all := decodePosts(t, s.do(t, http.MethodGet, "/api/v1/posts", bob, nil))
	require.Len(t, all, 2)
	assert.Equal(t, repost.ID, all[0].ID)

	after := decodePosts(t, s.do(t, http.MethodGet, "/api/v1/posts/0/after", bob, nil))
	require.Len(t, after, 1)
	assert.Equal(t, repost.ID, after[0].ID)

	before := decodePosts(t, s.do(t, http.MethodPost, "/api/v1/posts/before", bob, posts.PostsCreatedBeforeRequest{ReferenceID: repost.ID, Limit: 10}))
	require.Len(t, before, 1)
	assert.Equal(t, created.ID, before[0].ID)

	recent := decodePosts(t, s.do(t, http.MethodGet, "/api/v1/posts/recent/1", bob, nil))
	require.Len(t, recent, 1)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/v1/posts/0", bob, nil).Code)
	deleted := decodePost(t, s.do(t, http.MethodDelete, "/api/v1/posts/0", alice, nil))
	assert.Equal(t, "edited", deleted.Content)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/posts/0", alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/posts/0/after", alice, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/posts/zero", alice, nil).Code)
}

func TestRouter_SeededFeed(t *testing.T) {
	s := newTestServer(t)
	n, err := posts.Seed(context.Background(), s.store)
	require.NoError(t, err)

	token := s.register(t, "reader")
	all := decodePosts(t, s.do(t, http.MethodGet, "/api/v1/posts", token, nil))
	assert.Len(t, all, n)
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEqual(t, http.StatusUnauthorized, w.Code)
}
