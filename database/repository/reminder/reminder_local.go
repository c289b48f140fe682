package reminderRepo

import (
	"fmt"
	"sort"
	"time"

	"memoria/models"
	"memoria/utils"

	badger "github.com/dgraph-io/badger/v4"
)

const reminderKeyPrefix = "reminder:"

// LocalReminderRepo implements ReminderRepository on the Badger fallback
// store. List operations scan the reminder: prefix and filter in memory;
// the collections involved are per-household, not fleet-scale.
type LocalReminderRepo struct {
	db *badger.DB
}

// NewLocalReminderRepo creates a ReminderRepository backed by the local store.
func NewLocalReminderRepo(db *badger.DB) ReminderRepository {
	return &LocalReminderRepo{db: db}
}

func reminderKey(id string) []byte {
	return []byte(reminderKeyPrefix + id)
}

func (r *LocalReminderRepo) GetByID(id string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(reminderKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return utils.DecodeWithDates(val, &reminder)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminder with id %s: %w", id, err)
	}
	return &reminder, nil
}

// scan visits every stored reminder and collects those matching keep.
func (r *LocalReminderRepo) scan(keep func(*models.Reminder) bool) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(reminderKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rem models.Reminder
			if err := it.Item().Value(func(val []byte) error {
				return utils.DecodeWithDates(val, &rem)
			}); err != nil {
				return err
			}
			if keep(&rem) {
				reminders = append(reminders, rem)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reminders: %w", err)
	}
	return reminders, nil
}

func (r *LocalReminderRepo) ListByUser(userID string) ([]models.Reminder, error) {
	reminders, err := r.scan(func(rem *models.Reminder) bool {
		return rem.UserID == userID
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ScheduledFor.Before(reminders[j].ScheduledFor)
	})
	return reminders, nil
}

func (r *LocalReminderRepo) ListDueCandidates(now time.Time, window time.Duration) ([]models.Reminder, error) {
	// The floor is inclusive: a reminder scheduled exactly one window ago
	// is still a candidate.
	floor := now.Add(-window)
	return r.scan(func(rem *models.Reminder) bool {
		return !rem.Completed &&
			!rem.ScheduledFor.Before(floor) &&
			!rem.ScheduledFor.After(now)
	})
}

func (r *LocalReminderRepo) Create(reminder *models.Reminder) error {
	reminder.UpdatedAt = time.Now()

	return r.db.Update(func(txn *badger.Txn) error {
		data, err := utils.EncodeWithDates(reminder)
		if err != nil {
			return fmt.Errorf("failed to encode reminder: %w", err)
		}
		return txn.Set(reminderKey(reminder.ID), data)
	})
}

func (r *LocalReminderRepo) Update(reminder *models.Reminder) error {
	reminder.UpdatedAt = time.Now()

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(reminderKey(reminder.ID)); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("reminder with id %s not found", reminder.ID)
			}
			return err
		}
		data, err := utils.EncodeWithDates(reminder)
		if err != nil {
			return fmt.Errorf("failed to encode reminder: %w", err)
		}
		return txn.Set(reminderKey(reminder.ID), data)
	})
}

func (r *LocalReminderRepo) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(reminderKey(id)); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("reminder with id %s not found", id)
			}
			return err
		}
		return txn.Delete(reminderKey(id))
	})
}
