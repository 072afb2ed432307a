package repository

import (
	"context"
	"time"

	"vitrine/internal/models"

	"gorm.io/gorm"
)

// AnalyticsRepository defines the interface for analytics data operations
type AnalyticsRepository interface {
	TouchVisitor(ctx context.Context, visitor *models.Visitor) error
	GetVisitorByVisitorID(ctx context.Context, visitorID string) (*models.Visitor, error)
	CreateSession(ctx context.Context, session *models.VisitorSession) error
	GetSessionBySessionID(ctx context.Context, sessionID string) (*models.VisitorSession, error)
	RecordSessionPageView(ctx context.Context, sessionID string, exitPage string) error
	CloseSession(ctx context.Context, sessionID string, endTime time.Time, duration uint) error
	CreatePageView(ctx context.Context, view *models.PageView) error
	CreateEvent(ctx context.Context, event *models.Event) error
	ListPageViews(ctx context.Context, path string, since time.Time, limit, offset int) ([]*models.PageView, int64, error)
	ListEvents(ctx context.Context, name, category string, since time.Time, limit, offset int) ([]*models.Event, int64, error)
	Summary(ctx context.Context, since time.Time) (*AnalyticsSummary, error)
}

// AnalyticsSummary aggregates traffic counters for the staff dashboard.
type AnalyticsSummary struct {
	TotalVisitors  int64 `json:"total_visitors"`
	TotalSessions  int64 `json:"total_sessions"`
	TotalPageViews int64 `json:"total_page_views"`
	TotalEvents    int64 `json:"total_events"`
	BotPageViews   int64 `json:"bot_page_views"`
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// TouchVisitor bumps the counters of a known visitor or records a new one.
// The returning-visitor path is an atomic UPDATE so concurrent hits never
// lose increments; the row is reloaded afterwards so the caller always
// holds the visitor's primary key.
func (r *analyticsRepository) TouchVisitor(ctx context.Context, visitor *models.Visitor) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Visitor{}).
		Where("visitor_id = ?", visitor.VisitorID).
		Updates(map[string]interface{}{
			"visits_count":  gorm.Expr("visits_count + ?", 1),
			"last_visit_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return r.db.WithContext(ctx).
			Where("visitor_id = ?", visitor.VisitorID).
			First(visitor).Error
	}

	visitor.LastVisitAt = now
	visitor.VisitsCount = 1
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *analyticsRepository) GetVisitorByVisitorID(ctx context.Context, visitorID string) (*models.Visitor, error) {
	var visitor models.Visitor
	err := r.db.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *analyticsRepository) CreateSession(ctx context.Context, session *models.VisitorSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *analyticsRepository) GetSessionBySessionID(ctx context.Context, sessionID string) (*models.VisitorSession, error) {
	var session models.VisitorSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// RecordSessionPageView bumps the session page counter and updates the exit
// page. A session stops being a bounce after its second page view.
func (r *analyticsRepository) RecordSessionPageView(ctx context.Context, sessionID string, exitPage string) error {
	return r.db.WithContext(ctx).
		Model(&models.VisitorSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"pages_viewed": gorm.Expr("pages_viewed + ?", 1),
			"exit_page":    exitPage,
			"is_bounce":    gorm.Expr("pages_viewed < ?", 1),
		}).Error
}

// CloseSession stamps end_time once; a session already closed is untouched.
func (r *analyticsRepository) CloseSession(ctx context.Context, sessionID string, endTime time.Time, duration uint) error {
	return r.db.WithContext(ctx).
		Model(&models.VisitorSession{}).
		Where("session_id = ? AND end_time IS NULL", sessionID).
		Updates(map[string]interface{}{
			"end_time": endTime,
			"duration": duration,
		}).Error
}

func (r *analyticsRepository) CreatePageView(ctx context.Context, view *models.PageView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

func (r *analyticsRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *analyticsRepository) ListPageViews(ctx context.Context, path string, since time.Time, limit, offset int) ([]*models.PageView, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.PageView{})
	if path != "" {
		base = base.Where("path = ?", path)
	}
	if !since.IsZero() {
		base = base.Where("created_at >= ?", since)
	}

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var views []*models.PageView
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&views).Error
	if err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

func (r *analyticsRepository) ListEvents(ctx context.Context, name, category string, since time.Time, limit, offset int) ([]*models.Event, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Event{})
	if name != "" {
		base = base.Where("name = ?", name)
	}
	if category != "" {
		base = base.Where("category = ?", category)
	}
	if !since.IsZero() {
		base = base.Where("created_at >= ?", since)
	}

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var events []*models.Event
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, count, nil
}

func (r *analyticsRepository) Summary(ctx context.Context, since time.Time) (*AnalyticsSummary, error) {
	summary := &AnalyticsSummary{}
	db := r.db.WithContext(ctx)

	sinceFilter := func(q *gorm.DB) *gorm.DB {
		if !since.IsZero() {
			return q.Where("created_at >= ?", since)
		}
		return q
	}

	if err := sinceFilter(db.Model(&models.Visitor{})).Count(&summary.TotalVisitors).Error; err != nil {
		return nil, err
	}
	if err := sinceFilter(db.Model(&models.VisitorSession{})).Count(&summary.TotalSessions).Error; err != nil {
		return nil, err
	}
	if err := sinceFilter(db.Model(&models.PageView{})).Count(&summary.TotalPageViews).Error; err != nil {
		return nil, err
	}
	if err := sinceFilter(db.Model(&models.Event{})).Count(&summary.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := sinceFilter(db.Model(&models.PageView{})).Where("is_bot = ?", true).Count(&summary.BotPageViews).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
