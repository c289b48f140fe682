package profileRepo

import (
	"memoria/models"
)

// ProfileRepository defines methods for patient-profile data access. The
// profile is keyed by user ID: at most one profile exists per user.
// GetByUserID returns (nil, nil) when no profile exists so the service can
// materialize a default one on first access.
type ProfileRepository interface {
	// GetByUserID retrieves the profile owned by the given user.
	GetByUserID(userID string) (*models.PatientProfile, error)
	// Create inserts a new profile record.
	Create(profile *models.PatientProfile) error
	// Update replaces an existing profile record, scoped by user ID.
	Update(profile *models.PatientProfile) error
	// Delete removes the profile owned by the given user.
	Delete(userID string) error
}
