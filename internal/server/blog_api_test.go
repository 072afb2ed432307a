package server

import (
	"fmt"
	"net/http"
	"testing"

	"vitrine/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPostVisibility(t *testing.T) {
	s, app, db := newTestServer(t)
	author, _ := createStaffUser(t, s, db)

	seedPublishedPost(t, db, author, "visible-post")
	draft := &models.Post{
		Slug:        "draft-post",
		AuthorID:    author.ID,
		Title:       models.Text("Draft"),
		Content:     models.Text("Not yet."),
		Publishable: models.Publishable{Status: models.StatusDraft},
		IsActive:    true,
	}
	require.NoError(t, db.Create(draft).Error)

	t.Run("list excludes drafts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/blog/posts", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.EqualValues(t, 1, body["count"])
	})

	t.Run("draft detail reads as missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/blog/posts/draft-post", nil, "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("detail reads count views", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			resp := doJSON(t, app, http.MethodGet, "/api/blog/posts/visible-post", nil, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			body := decodeBody(t, resp)
			require.EqualValues(t, i, body["views_count"])
		}

		var post models.Post
		require.NoError(t, db.Where("slug = ?", "visible-post").First(&post).Error)
		require.EqualValues(t, 2, post.ViewsCount)
	})
}

func TestPostLanguageFallback(t *testing.T) {
	s, app, db := newTestServer(t)
	author, _ := createStaffUser(t, s, db)
	seedPublishedPost(t, db, author, "localized-post")

	t.Run("requested translation served", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/blog/posts/localized-post?lang=ru", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Contains(t, body["content_html"], "Русский текст")
	})

	t.Run("missing translation falls back to english", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/blog/posts/localized-post?lang=he", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Contains(t, body["content_html"], "English body")
	})

	t.Run("accept-language header is honored", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/blog/posts/localized-post", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Contains(t, body["content_html"], "English body")
	})
}

func TestCommentModerationFlow(t *testing.T) {
	s, app, db := newTestServer(t)
	author, token := createStaffUser(t, s, db)
	post := seedPublishedPost(t, db, author, "commented-post")

	submit := map[string]interface{}{
		"author_name":  "Visitor",
		"author_email": "v@example.com",
		"content":      "Nice write-up.",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/blog/posts/commented-post/comments", submit, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "pending_approval", body["status"])
	require.Contains(t, body["message"], "moderation")

	var comment models.Comment
	require.NoError(t, db.Where("post_id = ?", post.ID).First(&comment).Error)
	require.False(t, comment.IsApproved)

	t.Run("pending comment stays hidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/blog/posts/commented-post/comments", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Empty(t, body["results"])
	})

	t.Run("approval makes it visible", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/admin/comments/%d/approve", comment.ID), nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, "/api/blog/posts/commented-post/comments", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Len(t, body["results"], 1)
	})

	t.Run("comments disabled rejects submission", func(t *testing.T) {
		require.NoError(t, db.Model(post).Update("allow_comments", false).Error)
		resp := doJSON(t, app, http.MethodPost, "/api/blog/posts/commented-post/comments", submit, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestSubscriptionDedup(t *testing.T) {
	_, app, _ := newTestServer(t)

	body := map[string]string{"email": "Reader@Example.com", "language": "ru"}
	resp := doJSON(t, app, http.MethodPost, "/api/blog/subscribe", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	require.Equal(t, "reader@example.com", created["email"])
	require.Equal(t, "ru", created["language"])

	// Same address again, different casing: conflict.
	resp = doJSON(t, app, http.MethodPost, "/api/blog/subscribe",
		map[string]string{"email": "reader@example.com"}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/blog/unsubscribe",
		map[string]string{"email": "reader@example.com"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/blog/unsubscribe",
		map[string]string{"email": "unknown@example.com"}, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestBlogStats(t *testing.T) {
	s, app, db := newTestServer(t)
	author, _ := createStaffUser(t, s, db)
	seedPublishedPost(t, db, author, "stats-post")

	resp := doJSON(t, app, http.MethodGet, "/api/blog/stats", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.EqualValues(t, 1, body["total_posts"])
}
