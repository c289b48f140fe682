package reminder

import (
	"time"

	"memoria/models"
	"memoria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Add assigns a new unique ID and creation time, stores the reminder, and
// returns the stored value.
func (s *DefaultReminderService) Add(rem models.Reminder) (*models.Reminder, error) {
	if rem.UserID == "" {
		return nil, ValidationError{Field: "userId", Reason: "required"}
	}
	if rem.Title == "" {
		return nil, ValidationError{Field: "title", Reason: "required"}
	}
	if rem.ScheduledFor.IsZero() {
		return nil, ValidationError{Field: "scheduledFor", Reason: "required"}
	}
	if rem.Type == "" {
		rem.Type = models.ReminderCustom
	}
	if rem.Recurring && rem.RecurrencePattern != "" {
		if _, err := NextOccurrence(rem.RecurrencePattern, rem.ScheduledFor); err != nil {
			return nil, ValidationError{Field: "recurrencePattern", Reason: err.Error()}
		}
	}

	rem.ID = uuid.New().String()
	rem.CreatedAt = time.Now()
	rem.Completed = false
	rem.SnoozedUntil = nil
	rem.LastNotifiedAt = nil

	if err := s.Repo.Create(&rem); err != nil {
		return nil, BackendError{Op: "reminder creation", Err: err}
	}
	return &rem, nil
}

// Update merges a sparse patch into the user's matching reminder. Nil patch
// fields are left untouched.
func (s *DefaultReminderService) Update(userID, id string, req models.ReminderUpdateRequest) (*models.Reminder, error) {
	rem, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Title != nil {
		if *req.Title == "" {
			return nil, ValidationError{Field: "title", Reason: "must not be empty"}
		}
		rem.Title = *req.Title
		changed = true
	}
	if req.Description != nil {
		rem.Description = *req.Description
		changed = true
	}
	if req.Type != nil {
		rem.Type = *req.Type
		changed = true
	}
	if req.ScheduledFor != nil {
		rem.ScheduledFor = *req.ScheduledFor
		changed = true
	}
	if req.Recurring != nil {
		rem.Recurring = *req.Recurring
		changed = true
	}
	if req.RecurrencePattern != nil {
		if *req.RecurrencePattern != "" {
			if _, err := NextOccurrence(*req.RecurrencePattern, rem.ScheduledFor); err != nil {
				return nil, ValidationError{Field: "recurrencePattern", Reason: err.Error()}
			}
		}
		rem.RecurrencePattern = *req.RecurrencePattern
		changed = true
	}
	if !changed {
		return nil, ValidationError{Field: "update", Reason: "no updatable fields provided"}
	}

	if err := s.Repo.Update(rem); err != nil {
		return nil, BackendError{Op: "reminder update", Err: err}
	}
	return rem, nil
}

// Delete removes the user's reminder irreversibly.
func (s *DefaultReminderService) Delete(userID, id string) error {
	rem, err := s.get(userID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(rem.ID); err != nil {
		return BackendError{Op: "reminder deletion", Err: err}
	}
	return nil
}

// Complete marks the reminder done. Calling it twice leaves the same
// observable state as calling it once. Completing a recurring reminder
// spawns the next occurrence as a fresh instance.
func (s *DefaultReminderService) Complete(userID, id string) error {
	rem, err := s.get(userID, id)
	if err != nil {
		return err
	}
	if rem.Completed {
		return nil
	}

	rem.Completed = true
	if err := s.Repo.Update(rem); err != nil {
		return BackendError{Op: "reminder completion", Err: err}
	}

	if rem.Recurring && rem.RecurrencePattern != "" {
		if err := s.spawnNext(rem); err != nil {
			utils.GetLogger().Warn("Complete: failed to spawn next occurrence",
				zap.String("id", rem.ID), zap.Error(err))
		}
	}
	return nil
}

// Snooze sets snoozedUntil to now + minutes. Valid only while the reminder
// is not completed; re-snoozing overwrites the prior snooze. The original
// schedule is never altered.
func (s *DefaultReminderService) Snooze(userID, id string, minutes int) error {
	if minutes <= 0 {
		return ValidationError{Field: "minutes", Reason: "must be positive"}
	}
	rem, err := s.get(userID, id)
	if err != nil {
		return err
	}
	if rem.Completed {
		return ValidationError{Field: "id", Reason: "cannot snooze a completed reminder"}
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	rem.SnoozedUntil = &until
	if err := s.Repo.Update(rem); err != nil {
		return BackendError{Op: "reminder snooze", Err: err}
	}
	return nil
}

// ListAll returns every reminder owned by the user.
func (s *DefaultReminderService) ListAll(userID string) ([]models.Reminder, error) {
	reminders, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, BackendError{Op: "reminder list", Err: err}
	}
	return reminders, nil
}

// ListUpcoming returns non-completed reminders scheduled after now, ordered
// ascending by schedule.
func (s *DefaultReminderService) ListUpcoming(userID string) ([]models.Reminder, error) {
	return s.listByStatus(userID, StatusUpcoming)
}

// ListOverdue returns non-completed reminders whose schedule has passed and
// that are not under an active snooze.
func (s *DefaultReminderService) ListOverdue(userID string) ([]models.Reminder, error) {
	return s.listByStatus(userID, StatusOverdue)
}

// RequestNotificationPermission reports whether push dispatch can reach the
// user. A denied or unavailable capability only disables dispatch;
// classification and manual completion keep working.
func (s *DefaultReminderService) RequestNotificationPermission(userID string) bool {
	if s.Dispatcher == nil {
		return false
	}
	return s.Dispatcher.Ready(userID)
}

func (s *DefaultReminderService) listByStatus(userID string, want Status) ([]models.Reminder, error) {
	all, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, BackendError{Op: "reminder list", Err: err}
	}
	now := time.Now()
	out := make([]models.Reminder, 0, len(all))
	for _, rem := range all {
		if StatusAt(&rem, now) == want {
			out = append(out, rem)
		}
	}
	return out, nil
}

// get resolves an ID to a reminder owned by the user. A reminder that
// belongs to someone else is reported as not found rather than forbidden,
// so IDs leak nothing across accounts.
func (s *DefaultReminderService) get(userID, id string) (*models.Reminder, error) {
	if id == "" {
		return nil, ValidationError{Field: "id", Reason: "required"}
	}
	rem, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, BackendError{Op: "reminder lookup", Err: err}
	}
	if rem == nil || rem.UserID != userID {
		return nil, NotFoundError{ID: id}
	}
	return rem, nil
}

// spawnNext creates the successor instance of a completed recurring
// reminder. The successor starts clean: not completed, not snoozed, not yet
// notified.
func (s *DefaultReminderService) spawnNext(prev *models.Reminder) error {
	after := prev.ScheduledFor
	if now := time.Now(); after.Before(now) {
		after = now
	}
	next, err := NextOccurrence(prev.RecurrencePattern, after)
	if err != nil {
		return err
	}

	succ := models.Reminder{
		ID:                  uuid.New().String(),
		UserID:              prev.UserID,
		Title:               prev.Title,
		Description:         prev.Description,
		Type:                prev.Type,
		ScheduledFor:        next,
		Recurring:           true,
		RecurrencePattern:   prev.RecurrencePattern,
		NotificationMethods: prev.NotificationMethods,
		CreatedAt:           time.Now(),
	}
	if err := s.Repo.Create(&succ); err != nil {
		return err
	}
	utils.GetLogger().Debug("Spawned next recurring occurrence",
		zap.String("prev", prev.ID), zap.String("next", succ.ID), zap.Time("scheduledFor", next))
	return nil
}
