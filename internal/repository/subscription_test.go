package repository

import (
	"context"
	"regexp"
	"testing"

	"vitrine/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSubscriptionRepository_ExistsByEmail(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		expected bool
	}{
		{"known email", 1, true},
		{"unknown email", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewSubscriptionRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "subscriptions"`)).
				WithArgs("someone@example.com").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			exists, err := repo.ExistsByEmail(context.Background(), "someone@example.com")
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriptionRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	sub := &models.Subscription{
		Email:    "someone@example.com",
		Language: "ru",
		IsActive: true,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "subscriptions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), sub)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
