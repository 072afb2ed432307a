package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vitrine/internal/cache"
	"vitrine/internal/config"
	"vitrine/internal/database"
	"vitrine/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a full server over an in-memory sqlite database with
// Redis absent, so caching and rate limiting degrade to pass-through.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	cache.SetClient(nil)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		Port:      "8080",
		JWTSecret: "test-secret-test-secret-test-1234",
		PageSize:  20,
		Env:       "test",
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// createStaffUser stores a staff account and returns it with a valid token.
func createStaffUser(t *testing.T, s *Server, db *gorm.DB) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hash),
		IsStaff:  true,
	}
	require.NoError(t, db.Create(user).Error)

	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

// seedPublishedPost stores a publicly visible post.
func seedPublishedPost(t *testing.T, db *gorm.DB, author *models.User, slug string) *models.Post {
	t.Helper()
	post := &models.Post{
		Slug:     slug,
		AuthorID: author.ID,
		Title:    models.Text("A Post"),
		Content: models.LocalizedText{
			"en": "English body with **bold** text.",
			"ru": "Русский текст записи.",
		},
		Publishable:   models.Publishable{Status: models.StatusPublished},
		AllowComments: true,
		IsActive:      true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// doJSON issues a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// decodeBody reads a JSON response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthEndpoints(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/health/live", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "healthy", body["status"])
}

func TestLogin(t *testing.T) {
	s, app, db := newTestServer(t)
	createStaffUser(t, s, db)

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login",
			map[string]string{"username": "admin", "password": "nope"}, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login",
			map[string]string{"username": "ghost", "password": "nope"}, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("success", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login",
			map[string]string{"username": "admin", "password": "correct horse"}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.NotEmpty(t, body["token"])
	})
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/posts/", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/admin/posts/", nil, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestPublishedAtStampedOnceThroughAPI(t *testing.T) {
	s, app, db := newTestServer(t)
	_, token := createStaffUser(t, s, db)

	create := map[string]interface{}{
		"title":   map[string]string{"en": "Lifecycle"},
		"content": map[string]string{"en": "Body text."},
		"status":  "published",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/admin/posts/", create, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	require.NotNil(t, created["published_at"])
	id := int(created["id"].(float64))
	firstPublished := created["published_at"].(string)

	// Cycle back to draft and publish again: the stamp must not move.
	for _, status := range []string{"draft", "published"} {
		update := map[string]interface{}{
			"title":   map[string]string{"en": "Lifecycle"},
			"content": map[string]string{"en": "Body text."},
			"status":  status,
		}
		resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/posts/%d", id), update, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	var post models.Post
	require.NoError(t, db.First(&post, id).Error)
	require.NotNil(t, post.PublishedAt)
	first, err := time.Parse(time.RFC3339Nano, firstPublished)
	require.NoError(t, err)
	require.WithinDuration(t, first, *post.PublishedAt, time.Second)
}
