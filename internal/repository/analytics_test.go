package repository

import (
	"context"
	"regexp"
	"testing"

	"vitrine/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAnalyticsRepository_TouchVisitor(t *testing.T) {
	t.Run("returning visitor takes the atomic update path", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAnalyticsRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "visitors" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// The update path reloads the row so callers get the primary key.
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "visitors"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "visitor_id", "visits_count"}).
				AddRow(7, "v-known", 3))

		visitor := &models.Visitor{VisitorID: "v-known"}
		err := repo.TouchVisitor(context.Background(), visitor)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), visitor.ID)
		assert.Equal(t, uint(3), visitor.VisitsCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("new visitor is inserted when no row matched", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAnalyticsRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "visitors" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "visitors"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		visitor := &models.Visitor{VisitorID: "v-new"}
		err := repo.TouchVisitor(context.Background(), visitor)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), visitor.VisitsCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAnalyticsRepository_CreatePageView(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAnalyticsRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "page_views"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.CreatePageView(context.Background(), &models.PageView{
		Path:      "/blog/first-post",
		VisitorID: "v-1",
		SessionID: "s-1",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_RecordSessionPageView(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAnalyticsRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "visitor_sessions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RecordSessionPageView(context.Background(), "s-1", "/about")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
