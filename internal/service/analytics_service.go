package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"vitrine/internal/models"
	"vitrine/internal/observability"
	"vitrine/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// botMarkers are user-agent fragments that classify a hit as automated.
var botMarkers = []string{"bot", "crawler", "spider", "slurp", "curl", "wget", "python-requests", "headless"}

// AnalyticsService records traffic facts and serves the staff dashboards.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// TrackPageViewInput is a public page view beacon. VisitorID and SessionID
// are client-held opaque tokens; empty values get fresh ones assigned.
type TrackPageViewInput struct {
	VisitorID   string
	SessionID   string
	Path        string
	QueryParams map[string]string
	Referrer    string
	Language    string
	IPAddress   string
	UserAgent   string
	IsMobile    bool
}

// TrackEventInput is a public custom interaction beacon.
type TrackEventInput struct {
	Name      string
	Category  string
	Data      map[string]interface{}
	Path      string
	VisitorID string
	SessionID string
	IPAddress string
	UserAgent string
}

// TrackResult returns the identifiers the client should persist for
// follow-up beacons.
type TrackResult struct {
	VisitorID string `json:"visitor_id"`
	SessionID string `json:"session_id"`
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

func isBotUserAgent(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

func truncateUserAgent(userAgent string) string {
	if len(userAgent) > maxUserAgentLen {
		return userAgent[:maxUserAgentLen]
	}
	return userAgent
}

// TrackPageView records a page hit: the visitor aggregate is touched, the
// session is created or extended, and an append-only page view row is stored.
func (s *AnalyticsService) TrackPageView(ctx context.Context, in TrackPageViewInput) (*TrackResult, error) {
	if in.Path == "" {
		in.Path = "/"
	}
	if in.VisitorID == "" {
		in.VisitorID = uuid.NewString()
	}
	if in.SessionID == "" {
		in.SessionID = uuid.NewString()
	}

	userAgent := truncateUserAgent(in.UserAgent)
	isBot := isBotUserAgent(userAgent)

	visitor := &models.Visitor{
		VisitorID: in.VisitorID,
		IPAddress: in.IPAddress,
		UserAgent: userAgent,
		Language:  in.Language,
		Referrer:  in.Referrer,
		IsBot:     isBot,
	}
	if err := s.analyticsRepo.TouchVisitor(ctx, visitor); err != nil {
		return nil, err
	}
	observability.AnalyticsFactsRecorded.WithLabelValues("visitor").Inc()

	if err := s.ensureSession(ctx, visitor, in, userAgent); err != nil {
		return nil, err
	}

	var queryParams datatypes.JSON
	if len(in.QueryParams) > 0 {
		if b, err := json.Marshal(in.QueryParams); err == nil {
			queryParams = b
		}
	}

	view := &models.PageView{
		Path:        in.Path,
		QueryParams: queryParams,
		IPAddress:   in.IPAddress,
		UserAgent:   userAgent,
		Referrer:    in.Referrer,
		Language:    in.Language,
		SessionID:   in.SessionID,
		VisitorID:   in.VisitorID,
		IsBot:       isBot,
		IsMobile:    in.IsMobile,
	}
	if err := s.analyticsRepo.CreatePageView(ctx, view); err != nil {
		return nil, err
	}
	observability.AnalyticsFactsRecorded.WithLabelValues("pageview").Inc()

	return &TrackResult{VisitorID: in.VisitorID, SessionID: in.SessionID}, nil
}

func (s *AnalyticsService) ensureSession(ctx context.Context, visitor *models.Visitor, in TrackPageViewInput, userAgent string) error {
	_, err := s.analyticsRepo.GetSessionBySessionID(ctx, in.SessionID)
	if err == nil {
		return s.analyticsRepo.RecordSessionPageView(ctx, in.SessionID, in.Path)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	session := &models.VisitorSession{
		VisitorID:   visitor.ID,
		SessionID:   in.SessionID,
		IPAddress:   in.IPAddress,
		UserAgent:   userAgent,
		EntryPage:   in.Path,
		ExitPage:    in.Path,
		PagesViewed: 1,
		Referrer:    in.Referrer,
		IsBounce:    true,
	}
	if err := s.analyticsRepo.CreateSession(ctx, session); err != nil {
		return err
	}
	observability.AnalyticsFactsRecorded.WithLabelValues("session").Inc()
	return nil
}

// TrackEvent records a custom interaction.
func (s *AnalyticsService) TrackEvent(ctx context.Context, in TrackEventInput) (*models.Event, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Event name is required")
	}

	var data datatypes.JSON
	if len(in.Data) > 0 {
		b, err := json.Marshal(in.Data)
		if err != nil {
			return nil, models.NewValidationError("Event data must be JSON-serializable")
		}
		data = b
	}

	event := &models.Event{
		Name:      in.Name,
		Category:  in.Category,
		Data:      data,
		IPAddress: in.IPAddress,
		UserAgent: truncateUserAgent(in.UserAgent),
		SessionID: in.SessionID,
		VisitorID: in.VisitorID,
		Path:      in.Path,
	}
	if err := s.analyticsRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	observability.AnalyticsFactsRecorded.WithLabelValues("event").Inc()
	return event, nil
}

// EndSession closes a session and records its duration.
func (s *AnalyticsService) EndSession(ctx context.Context, sessionID string) error {
	session, err := s.analyticsRepo.GetSessionBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Session", sessionID)
		}
		return err
	}

	now := time.Now()
	var duration uint
	if now.After(session.StartTime) {
		duration = uint(now.Sub(session.StartTime) / time.Second)
	}
	return s.analyticsRepo.CloseSession(ctx, sessionID, now, duration)
}

// ListPageViews returns recorded page views for the staff dashboard.
func (s *AnalyticsService) ListPageViews(ctx context.Context, path string, since time.Time, limit, offset int) ([]*models.PageView, int64, error) {
	return s.analyticsRepo.ListPageViews(ctx, path, since, limit, offset)
}

// ListEvents returns recorded events for the staff dashboard.
func (s *AnalyticsService) ListEvents(ctx context.Context, name, category string, since time.Time, limit, offset int) ([]*models.Event, int64, error) {
	return s.analyticsRepo.ListEvents(ctx, name, category, since, limit, offset)
}

// Summary aggregates the traffic counters since the given time.
func (s *AnalyticsService) Summary(ctx context.Context, since time.Time) (*repository.AnalyticsSummary, error) {
	return s.analyticsRepo.Summary(ctx, since)
}
