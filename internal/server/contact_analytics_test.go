package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"vitrine/internal/models"

	"github.com/stretchr/testify/require"
)

func TestContactInboxFlow(t *testing.T) {
	s, app, db := newTestServer(t)
	_, token := createStaffUser(t, s, db)

	t.Run("rejects incomplete submissions", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/contact",
			map[string]string{"name": "Visitor", "email": "not-an-email"}, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	submit := map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello",
		"message": "I have a question.",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/contact", submit, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	// No channels configured in tests: both flags report false.
	notifications := body["notifications"].(map[string]interface{})
	require.Equal(t, false, notifications["email_sent"])
	require.Equal(t, false, notifications["telegram_sent"])

	var message models.ContactMessage
	require.NoError(t, db.First(&message).Error)
	require.Equal(t, models.ContactNew, message.Status)
	require.False(t, message.IsRead)

	t.Run("unread count reflects the inbox", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/contact-messages/unread-count", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.EqualValues(t, 1, body["unread"])
	})

	t.Run("opening marks read once", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet,
			fmt.Sprintf("/api/admin/contact-messages/%d", message.ID), nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		var read models.ContactMessage
		require.NoError(t, db.First(&read, message.ID).Error)
		require.True(t, read.IsRead)
		require.NotNil(t, read.ReadAt)
		firstReadAt := *read.ReadAt

		time.Sleep(10 * time.Millisecond)
		resp = doJSON(t, app, http.MethodGet,
			fmt.Sprintf("/api/admin/contact-messages/%d", message.ID), nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		require.NoError(t, db.First(&read, message.ID).Error)
		require.Equal(t, firstReadAt, *read.ReadAt)
	})

	t.Run("status workflow", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPatch,
			fmt.Sprintf("/api/admin/contact-messages/%d/status", message.ID),
			map[string]string{"status": "replied"}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Equal(t, "replied", body["status"])

		resp = doJSON(t, app, http.MethodPatch,
			fmt.Sprintf("/api/admin/contact-messages/%d/status", message.ID),
			map[string]string{"status": "bogus"}, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestAnalyticsBeacons(t *testing.T) {
	s, app, db := newTestServer(t)
	_, token := createStaffUser(t, s, db)

	resp := doJSON(t, app, http.MethodPost, "/api/analytics/pageview",
		map[string]interface{}{"path": "/blog"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decodeBody(t, resp)
	visitorID := first["visitor_id"].(string)
	sessionID := first["session_id"].(string)
	require.NotEmpty(t, visitorID)
	require.NotEmpty(t, sessionID)

	// Second hit in the same session extends it instead of creating a new one.
	resp = doJSON(t, app, http.MethodPost, "/api/analytics/pageview",
		map[string]interface{}{
			"path":       "/blog/some-post",
			"visitor_id": visitorID,
			"session_id": sessionID,
		}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	var session models.VisitorSession
	require.NoError(t, db.Where("session_id = ?", sessionID).First(&session).Error)
	require.EqualValues(t, 2, session.PagesViewed)
	require.Equal(t, "/blog", session.EntryPage)
	require.Equal(t, "/blog/some-post", session.ExitPage)
	require.False(t, session.IsBounce)

	var visitor models.Visitor
	require.NoError(t, db.Where("visitor_id = ?", visitorID).First(&visitor).Error)
	require.EqualValues(t, 2, visitor.VisitsCount)

	t.Run("event beacon", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/analytics/event",
			map[string]interface{}{
				"name":       "download_cv",
				"category":   "engagement",
				"session_id": sessionID,
				"visitor_id": visitorID,
				"data":       map[string]interface{}{"format": "pdf"},
			}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Equal(t, "download_cv", body["name"])

		resp = doJSON(t, app, http.MethodPost, "/api/analytics/event",
			map[string]interface{}{"category": "engagement"}, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("session end is idempotent", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/analytics/session/end",
			map[string]string{"session_id": sessionID}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		var closed models.VisitorSession
		require.NoError(t, db.Where("session_id = ?", sessionID).First(&closed).Error)
		require.NotNil(t, closed.EndTime)
		firstEnd := *closed.EndTime

		resp = doJSON(t, app, http.MethodPost, "/api/analytics/session/end",
			map[string]string{"session_id": sessionID}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		require.NoError(t, db.Where("session_id = ?", sessionID).First(&closed).Error)
		require.Equal(t, firstEnd, *closed.EndTime)
	})

	t.Run("summary", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/analytics/summary", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.EqualValues(t, 1, body["total_visitors"])
		require.EqualValues(t, 1, body["total_sessions"])
		require.EqualValues(t, 2, body["total_page_views"])
		require.EqualValues(t, 1, body["total_events"])
	})
}

func TestReturningVisitorStartsNewSession(t *testing.T) {
	_, app, db := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/analytics/pageview",
		map[string]interface{}{"path": "/"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decodeBody(t, resp)
	visitorID := first["visitor_id"].(string)
	firstSessionID := first["session_id"].(string)

	// The visitor comes back later: known visitor_id, fresh session_id.
	resp = doJSON(t, app, http.MethodPost, "/api/analytics/pageview",
		map[string]interface{}{
			"path":       "/portfolio",
			"visitor_id": visitorID,
			"session_id": "returning-session",
		}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	var visitor models.Visitor
	require.NoError(t, db.Where("visitor_id = ?", visitorID).First(&visitor).Error)
	require.EqualValues(t, 2, visitor.VisitsCount)

	// Both sessions must reference the same visitor row; a zero foreign
	// key would be rejected outright on postgres.
	var sessions []models.VisitorSession
	require.NoError(t, db.Order("id").Find(&sessions).Error)
	require.Len(t, sessions, 2)
	require.Equal(t, firstSessionID, sessions[0].SessionID)
	require.Equal(t, "returning-session", sessions[1].SessionID)
	for _, session := range sessions {
		require.NotZero(t, session.VisitorID)
		require.Equal(t, visitor.ID, session.VisitorID)
	}
}
