package reminder

import (
	"time"

	"memoria/models"
)

// Status is the derived classification of a reminder at a point in time.
// It is never stored; every read recomputes it against "now".
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOverdue   Status = "overdue"
	StatusSnoozed   Status = "snoozed"
	StatusCompleted Status = "completed"
)

// DueWindow is the trailing window behind "now" inside which a reminder
// counts as due for notification.
const DueWindow = 60 * time.Second

// activeSnooze reports whether the reminder is under a snooze that has not
// yet elapsed. An elapsed snooze behaves exactly as if it were never set.
func activeSnooze(rem *models.Reminder, now time.Time) bool {
	return rem.SnoozedUntil != nil && rem.SnoozedUntil.After(now)
}

// StatusAt classifies a reminder relative to now. Every non-completed
// reminder lands in exactly one of upcoming, overdue, or snoozed; completed
// reminders are in none of the three.
func StatusAt(rem *models.Reminder, now time.Time) Status {
	if rem.Completed {
		return StatusCompleted
	}
	if activeSnooze(rem, now) {
		return StatusSnoozed
	}
	if rem.ScheduledFor.After(now) {
		return StatusUpcoming
	}
	return StatusOverdue
}

// DueForNotification reports whether the sweep should dispatch for this
// reminder: its schedule crossed "now" inside the trailing window, it is
// neither completed nor snoozed, and it has not already been notified for
// this crossing. LastNotifiedAt makes the one-shot guarantee explicit: a
// sweep delayed past the window can never double-dispatch, and rescheduling
// the reminder re-arms it.
func DueForNotification(rem *models.Reminder, now time.Time, window time.Duration) bool {
	if rem.Completed || activeSnooze(rem, now) {
		return false
	}
	if rem.ScheduledFor.After(now) {
		return false
	}
	if now.Sub(rem.ScheduledFor) > window {
		return false
	}
	if rem.LastNotifiedAt != nil && !rem.LastNotifiedAt.Before(rem.ScheduledFor) {
		return false
	}
	return true
}
