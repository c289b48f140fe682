package reminderRepo

import (
	"time"

	"memoria/models"
)

// ReminderRepository defines methods for reminder data access. GetByID
// returns (nil, nil) when no record exists; the service maps that to a
// NotFound signal rather than a crash.
type ReminderRepository interface {
	// GetByID retrieves a reminder by its unique ID.
	GetByID(id string) (*models.Reminder, error)
	// ListByUser retrieves all reminders owned by the given user.
	ListByUser(userID string) ([]models.Reminder, error)
	// ListDueCandidates retrieves non-completed reminders across all users
	// whose scheduledFor falls inside [now-window, now]. The sweep applies
	// the remaining dispatch predicate (snooze, lastNotifiedAt) itself.
	ListDueCandidates(now time.Time, window time.Duration) ([]models.Reminder, error)
	// Create inserts a new reminder record.
	Create(reminder *models.Reminder) error
	// Update replaces an existing reminder record, scoped by its ID.
	Update(reminder *models.Reminder) error
	// Delete removes a reminder record by its ID.
	Delete(id string) error
}
