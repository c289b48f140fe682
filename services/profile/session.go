package profile

import (
	"memoria/models"
	"memoria/utils"

	"go.uber.org/zap"
)

// RecoverSession validates a previously issued token and reloads identity
// and profile for it. When the backend is unreachable the caller keeps
// whatever snapshot it has; recovery is a no-op, never destructive.
func (s *DefaultProfileService) RecoverSession(token string) (*AuthResponse, error) {
	if token == "" {
		return nil, ValidationError{Field: "token", Reason: "required"}
	}

	userID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return nil, BackendError{Op: "session recovery", Err: err}
	}
	if !utils.CheckTokenHash(userID, utils.HashToken(token)) {
		return nil, ErrInvalidCredentials
	}

	userRec, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, BackendError{Op: "session recovery", Err: err}
	}
	if userRec == nil {
		return nil, NotFoundError{Kind: "user", ID: userID}
	}

	resp := &AuthResponse{
		ID:    userRec.ID,
		Token: token,
		User:  userRec,
	}
	if userRec.Role == models.RolePatient {
		prof, err := s.GetProfile(userRec.ID)
		if err != nil {
			utils.GetLogger().Error("RecoverSession: failed to load profile",
				zap.String("userID", userRec.ID), zap.Error(err))
		} else {
			resp.Profile = prof
		}
	}
	return resp, nil
}

// ResetPassword triggers a best-effort password reset mail. The mail sender
// is an external collaborator; absence of one is logged, not fatal.
func (s *DefaultProfileService) ResetPassword(email string) error {
	if email == "" {
		return ValidationError{Field: "email", Reason: "required"}
	}
	userRec, err := s.UserRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return BackendError{Op: "password reset", Err: err}
	}
	// Do not reveal whether the account exists; log and return success
	// either way.
	if userRec == nil {
		utils.GetLogger().Info("ResetPassword: no account for email", zap.String("email", email))
		return nil
	}
	utils.GetLogger().Sugar().Infof("ResetPassword: reset requested for user %s", userRec.ID)
	return nil
}
