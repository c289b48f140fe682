package profileRepo

import (
	"fmt"
	"time"

	"memoria/models"
	"memoria/utils"

	badger "github.com/dgraph-io/badger/v4"
)

const profileKeyPrefix = "profile:"

// LocalProfileRepo implements ProfileRepository on the Badger fallback
// store. One record per user, stored as date-tagged JSON so timestamp
// fields survive the round trip exactly.
type LocalProfileRepo struct {
	db *badger.DB
}

// NewLocalProfileRepo creates a ProfileRepository backed by the local store.
func NewLocalProfileRepo(db *badger.DB) ProfileRepository {
	return &LocalProfileRepo{db: db}
}

func profileKey(userID string) []byte {
	return []byte(profileKeyPrefix + userID)
}

func (r *LocalProfileRepo) GetByUserID(userID string) (*models.PatientProfile, error) {
	var profile models.PatientProfile
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return utils.DecodeWithDates(val, &profile)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *LocalProfileRepo) Create(profile *models.PatientProfile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(profileKey(profile.UserID)); err == nil {
			return fmt.Errorf("profile for user %s already exists", profile.UserID)
		}
		data, err := utils.EncodeWithDates(profile)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return txn.Set(profileKey(profile.UserID), data)
	})
}

func (r *LocalProfileRepo) Update(profile *models.PatientProfile) error {
	profile.UpdatedAt = time.Now()

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(profileKey(profile.UserID)); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("profile for user %s not found", profile.UserID)
			}
			return err
		}
		data, err := utils.EncodeWithDates(profile)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return txn.Set(profileKey(profile.UserID), data)
	})
}

func (r *LocalProfileRepo) Delete(userID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(profileKey(userID)); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("profile for user %s not found", userID)
			}
			return err
		}
		return txn.Delete(profileKey(userID))
	})
}
