package profile

import (
	"time"

	"memoria/models"
	"memoria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetUserByID retrieves an account by its unique ID.
func (s *DefaultProfileService) GetUserByID(userID string) (*models.User, error) {
	userRec, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, BackendError{Op: "user lookup", Err: err}
	}
	if userRec == nil {
		return nil, NotFoundError{Kind: "user", ID: userID}
	}
	return userRec, nil
}

// GetProfile retrieves the patient profile for a user. When none exists yet
// a default profile is created and persisted, so every patient has a
// non-nil profile after the first successful call. A second call returns
// the stored row; it never creates a second one.
func (s *DefaultProfileService) GetProfile(userID string) (*models.PatientProfile, error) {
	if userID == "" {
		return nil, ValidationError{Field: "userId", Reason: "required"}
	}

	existing, err := s.ProfileRepo.GetByUserID(userID)
	if err != nil {
		return nil, BackendError{Op: "profile load", Err: err}
	}
	if existing != nil {
		return existing, nil
	}

	created := defaultProfile(userID)
	if err := s.ProfileRepo.Create(created); err != nil {
		// A concurrent first access may have won the create; re-read before
		// reporting failure.
		if again, rerr := s.ProfileRepo.GetByUserID(userID); rerr == nil && again != nil {
			return again, nil
		}
		utils.GetLogger().Error("GetProfile: failed to create default profile",
			zap.String("userID", userID), zap.Error(err))
		return nil, BackendError{Op: "profile creation", Err: err}
	}
	return created, nil
}

// DeleteUser removes an account and, for patients, the owned profile.
func (s *DefaultProfileService) DeleteUser(userID string) error {
	userRec, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return BackendError{Op: "user lookup", Err: err}
	}
	if userRec == nil {
		return NotFoundError{Kind: "user", ID: userID}
	}

	if userRec.Role == models.RolePatient {
		if err := s.ProfileRepo.Delete(userID); err != nil {
			utils.GetLogger().Warn("DeleteUser: failed to delete profile",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	if err := s.UserRepo.Delete(userID); err != nil {
		return BackendError{Op: "user deletion", Err: err}
	}
	return s.RevokeToken(userID)
}

// defaultProfile builds the minimal valid profile materialized on first
// access.
func defaultProfile(userID string) *models.PatientProfile {
	now := time.Now()
	return &models.PatientProfile{
		ID:            "p_" + uuid.New().String(),
		UserID:        userID,
		DateOfBirth:   now,
		DementiaStage: "not_diagnosed",
		Medications:   []models.Medication{},
		Routines:      []models.Routine{},
		Memories:      []models.Memory{},
		MoodHistory:   []models.MoodEntry{},
		FavoriteMusic: []string{},
		Hobbies:       []string{},
		ComfortItems:  []string{},
		Allergies:     []string{},
		IdentityProfile: &models.IdentityCard{
			PreferredName:  "",
			Affirmation:    "You are safe. You are at home. You are loved.",
			FavoriteThings: []string{},
		},
		FamiliarFaces: []models.FamiliarFace{},
		LocationInfo: &models.LocationInfo{
			CurrentLocation: "Home",
			SafePlaces:      []string{"Living Room", "Kitchen", "Bedroom"},
		},
		CalmingMessage: &models.CalmingMessage{
			Enabled:         true,
			MessageType:     "faith_neutral",
			ShowOnDashboard: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
