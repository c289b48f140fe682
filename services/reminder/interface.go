package reminder

import (
	"context"

	reminderRepo "memoria/database/repository/reminder"
	"memoria/models"
)

// ReminderService defines business logic for the reminder collection:
// CRUD, snooze/complete transitions, and the derived classification lists.
// Classification is recomputed against the live collection and the current
// time on every call; nothing derived is cached.
type ReminderService interface {
	// Add assigns a new ID and creation time and stores the reminder.
	Add(rem models.Reminder) (*models.Reminder, error)
	// Update merges a sparse patch into the user's matching reminder.
	Update(userID, id string, req models.ReminderUpdateRequest) (*models.Reminder, error)
	// Delete removes the user's reminder irreversibly.
	Delete(userID, id string) error
	// Complete marks the user's reminder done. Idempotent. Completing a
	// recurring reminder spawns the next occurrence.
	Complete(userID, id string) error
	// Snooze suppresses overdue status for the given number of minutes
	// without altering the original schedule. Re-snoozing overwrites the
	// prior snooze.
	Snooze(userID, id string, minutes int) error

	// ListAll returns every reminder owned by the user, schedule ascending.
	ListAll(userID string) ([]models.Reminder, error)
	// ListUpcoming returns non-completed reminders scheduled after now,
	// ordered ascending by schedule.
	ListUpcoming(userID string) ([]models.Reminder, error)
	// ListOverdue returns non-completed reminders whose schedule has passed
	// and that are not under an active snooze.
	ListOverdue(userID string) ([]models.Reminder, error)

	// RequestNotificationPermission reports whether push dispatch can reach
	// the user. Classification works regardless of the answer.
	RequestNotificationPermission(userID string) bool
}

// Dispatcher delivers a due-reminder notification. Implementations: direct
// FCM push, or an asynq queue producer when Redis is configured.
type Dispatcher interface {
	Dispatch(ctx context.Context, rem *models.Reminder) error
	// Ready reports whether dispatch can reach the given user at all.
	Ready(userID string) bool
}

// DefaultReminderService is the production implementation.
type DefaultReminderService struct {
	Repo       reminderRepo.ReminderRepository
	Dispatcher Dispatcher
}
