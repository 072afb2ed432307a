package seed

import (
	"testing"

	"vitrine/internal/database"
	"vitrine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestSeederRun(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumPosts: 10, NumProjects: 5, ShouldClean: true}))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsStaff)

	var postCount, draftCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("status = ?", models.StatusDraft).Count(&draftCount).Error)
	assert.EqualValues(t, 10, postCount)
	assert.EqualValues(t, 2, draftCount)

	// Published posts got their stamp from the model hook.
	var unstamped int64
	require.NoError(t, db.Model(&models.Post{}).
		Where("status = ? AND published_at IS NULL", models.StatusPublished).
		Count(&unstamped).Error)
	assert.Zero(t, unstamped)

	var projectCount, skillCount, subCount int64
	require.NoError(t, db.Model(&models.Project{}).Count(&projectCount).Error)
	require.NoError(t, db.Model(&models.Skill{}).Count(&skillCount).Error)
	require.NoError(t, db.Model(&models.Subscription{}).Count(&subCount).Error)
	assert.EqualValues(t, 5, projectCount)
	assert.NotZero(t, skillCount)
	assert.EqualValues(t, 10, subCount)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	first, err := s.EnsureAdmin()
	require.NoError(t, err)
	second, err := s.EnsureAdmin()
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
