package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupModelDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Post{}, &Category{}, &Tag{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestPublicationStatusValid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusPublished.Valid())
	assert.True(t, StatusArchived.Valid())
	assert.False(t, PublicationStatus("live").Valid())
	assert.False(t, PublicationStatus("").Valid())
}

func TestPublishedAtStampedOnce(t *testing.T) {
	db := setupModelDB(t)

	author := User{Username: "writer", Email: "w@example.com", Password: "x"}
	require.NoError(t, db.Create(&author).Error)

	post := Post{
		Slug:        "lifecycle",
		AuthorID:    author.ID,
		Title:       Text("Lifecycle"),
		Content:     Text("Body."),
		Publishable: Publishable{Status: StatusDraft},
	}
	require.NoError(t, db.Create(&post).Error)
	assert.Nil(t, post.PublishedAt)

	// First publish stamps the timestamp.
	post.Status = StatusPublished
	require.NoError(t, db.Save(&post).Error)
	require.NotNil(t, post.PublishedAt)
	first := *post.PublishedAt

	// Cycling through archived and back never moves it.
	for _, status := range []PublicationStatus{StatusArchived, StatusDraft, StatusPublished} {
		time.Sleep(5 * time.Millisecond)
		post.Status = status
		require.NoError(t, db.Save(&post).Error)

		var reloaded Post
		require.NoError(t, db.First(&reloaded, post.ID).Error)
		require.NotNil(t, reloaded.PublishedAt)
		assert.WithinDuration(t, first, *reloaded.PublishedAt, time.Millisecond)
	}
}

func TestIsPublished(t *testing.T) {
	p := Publishable{Status: StatusDraft}
	assert.False(t, p.IsPublished())
	p.Status = StatusPublished
	assert.True(t, p.IsPublished())
	p.Status = StatusArchived
	assert.False(t, p.IsPublished())
}

func TestContactStatusValid(t *testing.T) {
	for _, s := range []ContactStatus{ContactNew, ContactInProgress, ContactReplied, ContactClosed, ContactSpam} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ContactStatus("handled").Valid())
}
