package profile

import (
	"memoria/models"
	"memoria/utils"

	"go.uber.org/zap"
)

// UpdateUser applies a sparse patch to an account. Nil fields are left
// untouched; non-nil fields replace the stored value wholesale. The merged
// value is only returned after the backend acknowledged the write.
func (s *DefaultProfileService) UpdateUser(req models.UserUpdateRequest) (*models.User, error) {
	logger := utils.GetLogger()

	if req.ID == nil || *req.ID == "" {
		return nil, ValidationError{Field: "id", Reason: "required for update"}
	}

	userRec, err := s.UserRepo.GetByID(*req.ID)
	if err != nil {
		return nil, BackendError{Op: "user update", Err: err}
	}
	if userRec == nil {
		return nil, NotFoundError{Kind: "user", ID: *req.ID}
	}

	changed := applyUserPatch(userRec, req)
	if !changed {
		logger.Warn("UpdateUser: no updatable fields provided", zap.String("userID", *req.ID))
		return nil, ValidationError{Field: "update", Reason: "no updatable fields provided"}
	}

	if err := s.UserRepo.Update(userRec); err != nil {
		logger.Error("UpdateUser: backend update failed", zap.String("userID", *req.ID), zap.Error(err))
		return nil, BackendError{Op: "user update", Err: err}
	}
	return userRec, nil
}

// UpdateProfile applies a sparse patch to a patient profile. Nested objects
// (identity card, location info, calming message, doctor) are replaced
// wholesale, never deep-merged.
func (s *DefaultProfileService) UpdateProfile(userID string, req models.ProfileUpdateRequest) (*models.PatientProfile, error) {
	logger := utils.GetLogger()

	if userID == "" {
		return nil, ValidationError{Field: "userId", Reason: "required for update"}
	}

	prof, err := s.ProfileRepo.GetByUserID(userID)
	if err != nil {
		return nil, BackendError{Op: "profile update", Err: err}
	}
	if prof == nil {
		return nil, NotFoundError{Kind: "profile", ID: userID}
	}

	changed := applyProfilePatch(prof, req)
	if !changed {
		logger.Warn("UpdateProfile: no updatable fields provided", zap.String("userID", userID))
		return nil, ValidationError{Field: "update", Reason: "no updatable fields provided"}
	}

	if err := s.ProfileRepo.Update(prof); err != nil {
		logger.Error("UpdateProfile: backend update failed", zap.String("userID", userID), zap.Error(err))
		return nil, BackendError{Op: "profile update", Err: err}
	}
	return prof, nil
}

// applyUserPatch merges non-nil patch fields into u. Reports whether
// anything was set.
func applyUserPatch(u *models.User, req models.UserUpdateRequest) bool {
	changed := false
	if req.Name != nil {
		u.Name = *req.Name
		changed = true
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
		changed = true
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
		changed = true
	}
	if req.FCMToken != nil {
		u.FCMToken = *req.FCMToken
		changed = true
	}
	if req.Preferences != nil {
		u.Preferences = *req.Preferences
		changed = true
	}
	if req.EmergencyContact != nil {
		u.EmergencyContact = req.EmergencyContact
		changed = true
	}
	return changed
}

// applyProfilePatch merges non-nil patch fields into p. Reports whether
// anything was set.
func applyProfilePatch(p *models.PatientProfile, req models.ProfileUpdateRequest) bool {
	changed := false
	if req.DateOfBirth != nil {
		p.DateOfBirth = *req.DateOfBirth
		changed = true
	}
	if req.DiagnosisDate != nil {
		p.DiagnosisDate = req.DiagnosisDate
		changed = true
	}
	if req.DementiaStage != nil {
		p.DementiaStage = *req.DementiaStage
		changed = true
	}
	if req.PrimaryDoctor != nil {
		p.PrimaryDoctor = req.PrimaryDoctor
		changed = true
	}
	if req.Medications != nil {
		p.Medications = *req.Medications
		changed = true
	}
	if req.Routines != nil {
		p.Routines = *req.Routines
		changed = true
	}
	if req.Memories != nil {
		p.Memories = *req.Memories
		changed = true
	}
	if req.MoodHistory != nil {
		p.MoodHistory = *req.MoodHistory
		changed = true
	}
	if req.FavoriteMusic != nil {
		p.FavoriteMusic = *req.FavoriteMusic
		changed = true
	}
	if req.Hobbies != nil {
		p.Hobbies = *req.Hobbies
		changed = true
	}
	if req.ComfortItems != nil {
		p.ComfortItems = *req.ComfortItems
		changed = true
	}
	if req.Allergies != nil {
		p.Allergies = *req.Allergies
		changed = true
	}
	if req.IdentityProfile != nil {
		p.IdentityProfile = req.IdentityProfile
		changed = true
	}
	if req.FamiliarFaces != nil {
		p.FamiliarFaces = *req.FamiliarFaces
		changed = true
	}
	if req.LocationInfo != nil {
		p.LocationInfo = req.LocationInfo
		changed = true
	}
	if req.CalmingMessage != nil {
		p.CalmingMessage = req.CalmingMessage
		changed = true
	}
	return changed
}
