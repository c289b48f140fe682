package reminderRepo

import (
	"testing"
	"time"

	"memoria/models"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) ReminderRepository {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLocalReminderRepo(db)
}

func TestLocalListDueCandidates_WindowBounds(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	store := func(id string, scheduledFor time.Time, completed bool) {
		require.NoError(t, repo.Create(&models.Reminder{
			ID:           id,
			UserID:       "u1",
			Title:        id,
			ScheduledFor: scheduledFor,
			Completed:    completed,
		}))
	}
	store("at-now", now, false)
	store("inside", now.Add(-30*time.Second), false)
	store("at-floor", now.Add(-window), false)
	store("expired", now.Add(-window-time.Second), false)
	store("future", now.Add(time.Second), false)
	store("done", now.Add(-10*time.Second), true)

	candidates, err := repo.ListDueCandidates(now, window)
	require.NoError(t, err)

	var ids []string
	for _, rem := range candidates {
		ids = append(ids, rem.ID)
	}
	assert.ElementsMatch(t, []string{"at-now", "inside", "at-floor"}, ids,
		"both window bounds are inclusive; completed and out-of-window reminders are excluded")
}

func TestLocalRepo_RoundTripPreservesSchedule(t *testing.T) {
	repo := newTestRepo(t)
	scheduled := time.Date(2024, 3, 10, 8, 15, 30, 123456789, time.UTC)

	require.NoError(t, repo.Create(&models.Reminder{
		ID:           "r1",
		UserID:       "u1",
		Title:        "Take medication",
		ScheduledFor: scheduled,
	}))

	stored, err := repo.GetByID("r1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.ScheduledFor.Equal(scheduled), "schedule survives storage to the nanosecond")
}
