package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "eventia.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func intPtr(v int) *int { return &v }

func seedEvent(t *testing.T, repo EventRepository, mutate func(*models.Event)) *models.Event {
	t.Helper()
	now := time.Now().UTC()
	e := &models.Event{
		Slug:                   "event-" + uuid.NewString()[:8],
		Title:                  "Go Meetup",
		Description:            "Monthly gophers night",
		CategoryID:             uuid.NewString(),
		Mode:                   models.ModeOnline,
		OnlineURL:              "https://meet.example.com/go",
		StartDate:              now.Add(24 * time.Hour),
		EndDate:                now.Add(26 * time.Hour),
		OrganizerID:            "org-1",
		Status:                 models.StatusPublished,
		IsRegistrationRequired: true,
		MaxRegistrations:       intPtr(2),
	}
	if mutate != nil {
		mutate(e)
	}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}
