package repository

import (
	"context"
	"regexp"
	"testing"

	"vitrine/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{
		PostID:      1,
		AuthorName:  "Reader",
		AuthorEmail: "reader@example.com",
		Content:     "Great write-up!",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListVisibleByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// Root (1), its reply (2), and a reply (3) to a hidden parent (99) that
	// must be dropped from the tree.
	mock.ExpectQuery(regexp.QuoteMeta(`post_id = $1 AND is_approved = $2 AND is_active = $3`)).
		WithArgs(1, true, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "parent_id", "content"}).
			AddRow(1, 1, nil, "Root comment").
			AddRow(2, 1, 1, "Reply to root").
			AddRow(3, 1, 99, "Orphaned reply"))

	roots, err := repo.ListVisibleByPost(ctx, 1)
	assert.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Root comment", roots[0].Content)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "Reply to root", roots[0].Replies[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_SetApproved(t *testing.T) {
	t.Run("approves existing comment", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewCommentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetApproved(context.Background(), 5, true)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing comment returns not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewCommentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SetApproved(context.Background(), 404, true)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
