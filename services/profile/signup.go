package profile

import (
	"strings"
	"time"

	"memoria/models"
	"memoria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register validates signup input, creates the account, and for patient
// accounts materializes the default profile.
func (s *DefaultProfileService) Register(req RegistrationRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ValidationError{Field: "registration", Reason: "name, email and password are required"}
	}
	switch req.Role {
	case models.RolePatient, models.RoleCaregiver, models.RoleHealthcareProvider:
	default:
		return nil, ValidationError{Field: "role", Reason: "unknown role"}
	}

	email := normalizeEmail(req.Email)
	existing, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, BackendError{Op: "registration", Err: err}
	}
	if existing != nil {
		return nil, ValidationError{Field: "email", Reason: "an account with this email already exists"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, BackendError{Op: "registration", Err: err}
	}

	now := time.Now()
	userObj := models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		Role:         req.Role,
		Phone:        req.Phone,
		PasswordHash: string(hashedPassword),
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.UserRepo.Create(&userObj); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, BackendError{Op: "registration", Err: err}
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Email, utils.AuthCacheTTL)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate token", zap.Error(err))
		return nil, BackendError{Op: "registration", Err: err}
	}
	if err := utils.CacheTokenHash(userObj.ID, utils.HashToken(token)); err != nil {
		utils.GetLogger().Warn("Register: failed to cache token hash", zap.Error(err))
	}

	resp := &AuthResponse{
		ID:    userObj.ID,
		Token: token,
		User:  &userObj,
	}

	if userObj.Role == models.RolePatient {
		profile, err := s.GetProfile(userObj.ID)
		if err != nil {
			utils.GetLogger().Error("Register: failed to materialize profile",
				zap.String("userID", userObj.ID), zap.Error(err))
		} else {
			// Seed the preferred name from the account's first name.
			first := strings.Fields(userObj.Name)
			if len(first) > 0 && profile.IdentityProfile != nil && profile.IdentityProfile.PreferredName == "" {
				patch := *profile.IdentityProfile
				patch.PreferredName = first[0]
				if updated, uerr := s.UpdateProfile(userObj.ID, models.ProfileUpdateRequest{IdentityProfile: &patch}); uerr != nil {
					utils.GetLogger().Warn("Register: failed to set preferred name", zap.Error(uerr))
				} else {
					profile = updated
				}
			}
			resp.Profile = profile
		}
	}

	return resp, nil
}
