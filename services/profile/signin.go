package profile

import (
	"memoria/models"
	"memoria/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies credentials against the active backend, mints a
// session token, and loads the patient profile for patient accounts.
// On failure the stored state is untouched and the caller's identity stays
// null.
func (s *DefaultProfileService) Authenticate(email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, ValidationError{Field: "credentials", Reason: "email and password are required"}
	}

	userRec, err := s.UserRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, BackendError{Op: "authentication", Err: err}
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, utils.AuthCacheTTL)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate token", zap.Error(err))
		return nil, BackendError{Op: "authentication", Err: err}
	}
	if err := utils.CacheTokenHash(userRec.ID, utils.HashToken(token)); err != nil {
		utils.GetLogger().Warn("Authenticate: failed to cache token hash", zap.Error(err))
	}

	resp := &AuthResponse{
		ID:    userRec.ID,
		Token: token,
		User:  userRec,
	}

	if userRec.Role == models.RolePatient {
		profile, err := s.GetProfile(userRec.ID)
		if err != nil {
			utils.GetLogger().Error("Authenticate: failed to load profile",
				zap.String("userID", userRec.ID), zap.Error(err))
		} else {
			resp.Profile = profile
		}
	}

	return resp, nil
}

// RevokeToken drops the cached token hash, ending the session.
func (s *DefaultProfileService) RevokeToken(userID string) error {
	if err := utils.DropTokenHash(userID); err != nil {
		return BackendError{Op: "logout", Err: err}
	}
	return nil
}
