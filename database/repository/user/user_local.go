package userRepo

import (
	"fmt"
	"strings"
	"time"

	"memoria/models"
	"memoria/utils"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user:email:"
)

// LocalUserRepo implements UserRepository on the Badger fallback store.
// Records are stored as date-tagged JSON under user:<id>, with a secondary
// email index under user:email:<email>.
type LocalUserRepo struct {
	db *badger.DB
}

// NewLocalUserRepo creates a UserRepository backed by the local store.
func NewLocalUserRepo(db *badger.DB) UserRepository {
	return &LocalUserRepo{db: db}
}

func userKey(id string) []byte {
	return []byte(userKeyPrefix + id)
}

// storedUser is the persisted shape of a user record. The model hides
// passwordHash and fcmToken from JSON so they never cross the API, but the
// store must keep them, so they get explicit keys here.
type storedUser struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"passwordHash"`
	FCMToken     string      `json:"fcmToken,omitempty"`
}

func encodeUser(user *models.User) ([]byte, error) {
	return utils.EncodeWithDates(storedUser{
		User:         *user,
		PasswordHash: user.PasswordHash,
		FCMToken:     user.FCMToken,
	})
}

func decodeUser(val []byte) (*models.User, error) {
	var rec storedUser
	if err := utils.DecodeWithDates(val, &rec); err != nil {
		return nil, err
	}
	user := rec.User
	user.PasswordHash = rec.PasswordHash
	user.FCMToken = rec.FCMToken
	return &user, nil
}

func emailKey(email string) []byte {
	return []byte(emailKeyPrefix + strings.ToLower(email))
}

func (r *LocalUserRepo) GetByID(id string) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			user, err = decodeUser(val)
			return err
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return user, nil
}

func (r *LocalUserRepo) GetByEmail(email string) (*models.User, error) {
	var id string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return r.GetByID(id)
}

func (r *LocalUserRepo) Create(user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(user.Email)); err == nil {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
		data, err := encodeUser(user)
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		return txn.Set(emailKey(user.Email), []byte(user.ID))
	})
}

func (r *LocalUserRepo) Update(user *models.User) error {
	user.UpdatedAt = time.Now()

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(user.ID)); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("user with id %s not found", user.ID)
			}
			return err
		}
		data, err := encodeUser(user)
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}
		return txn.Set(userKey(user.ID), data)
	})
}

func (r *LocalUserRepo) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("user with id %s not found", id)
			}
			return err
		}
		var user *models.User
		if err := item.Value(func(val []byte) error {
			var derr error
			user, derr = decodeUser(val)
			return derr
		}); err != nil {
			return err
		}
		if err := txn.Delete(emailKey(user.Email)); err != nil {
			return err
		}
		return txn.Delete(userKey(id))
	})
}
