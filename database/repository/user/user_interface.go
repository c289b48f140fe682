package userRepo

import (
	"memoria/models"
)

// UserRepository defines methods for user data access. Two implementations
// exist: MongoDB for the remote backend and Badger for the local fallback
// store. Lookups return (nil, nil) when no record exists.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update replaces an existing user record, scoped by its ID.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
