package reminder

import (
	"testing"
	"time"

	"memoria/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusAt_Partition(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		rem  models.Reminder
		want Status
	}{
		{"scheduled in the future", models.Reminder{ScheduledFor: future}, StatusUpcoming},
		{"schedule passed", models.Reminder{ScheduledFor: past}, StatusOverdue},
		{"scheduled exactly now", models.Reminder{ScheduledFor: now}, StatusOverdue},
		{"completed beats everything", models.Reminder{ScheduledFor: past, Completed: true}, StatusCompleted},
		{"active snooze beats overdue", models.Reminder{ScheduledFor: past, SnoozedUntil: &future}, StatusSnoozed},
		{"elapsed snooze behaves as unset", models.Reminder{ScheduledFor: past, SnoozedUntil: &past}, StatusOverdue},
		{"snoozed while still upcoming", models.Reminder{ScheduledFor: future, SnoozedUntil: &future}, StatusSnoozed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusAt(&tc.rem, now))
		})
	}
}

func TestDueForNotification_Window(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	dueAt := func(offset time.Duration) *models.Reminder {
		return &models.Reminder{ScheduledFor: now.Add(offset)}
	}

	assert.True(t, DueForNotification(dueAt(0), now, window), "exactly now is due")
	assert.True(t, DueForNotification(dueAt(-30*time.Second), now, window), "inside trailing window")
	assert.True(t, DueForNotification(dueAt(-window), now, window), "window edge is inclusive")
	assert.False(t, DueForNotification(dueAt(-window-time.Second), now, window), "beyond window never fires")
	assert.False(t, DueForNotification(dueAt(time.Second), now, window), "future is never due")
}

func TestDueForNotification_SuppressedStates(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	window := time.Minute
	scheduled := now.Add(-10 * time.Second)

	completed := &models.Reminder{ScheduledFor: scheduled, Completed: true}
	assert.False(t, DueForNotification(completed, now, window))

	snoozeUntil := now.Add(5 * time.Minute)
	snoozed := &models.Reminder{ScheduledFor: scheduled, SnoozedUntil: &snoozeUntil}
	assert.False(t, DueForNotification(snoozed, now, window))

	lapsed := now.Add(-time.Minute)
	lapsedSnooze := &models.Reminder{ScheduledFor: scheduled, SnoozedUntil: &lapsed}
	assert.True(t, DueForNotification(lapsedSnooze, now, window), "elapsed snooze does not suppress")
}

func TestDueForNotification_OneShot(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	window := time.Minute
	scheduled := now.Add(-10 * time.Second)

	rem := &models.Reminder{ScheduledFor: scheduled}
	assert.True(t, DueForNotification(rem, now, window))

	// A successful dispatch stamps lastNotifiedAt; the next sweep skips.
	stamp := now
	rem.LastNotifiedAt = &stamp
	assert.False(t, DueForNotification(rem, now.Add(10*time.Second), window))

	// Rescheduling past the stamp re-arms the reminder.
	rem.ScheduledFor = now.Add(20 * time.Second)
	later := now.Add(30 * time.Second)
	assert.True(t, DueForNotification(rem, later, window))
}
