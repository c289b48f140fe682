package profile

import (
	"strings"

	profileRepo "memoria/database/repository/profile"
	userRepo "memoria/database/repository/user"
	"memoria/models"
)

// ProfileService defines business logic for accounts and patient profiles.
// It is the single source of truth for the authenticated user's identity and
// profile, whichever backend the repositories run on.
type ProfileService interface {
	// Authenticate verifies credentials and returns the identity, the loaded
	// profile (for patients), and a session token.
	Authenticate(email, password string) (*AuthResponse, error)
	// Register creates a new account; patient accounts get a default profile.
	Register(req RegistrationRequest) (*AuthResponse, error)
	// RecoverSession validates a previously issued token and reloads the
	// identity and profile for it.
	RecoverSession(token string) (*AuthResponse, error)

	// GetUserByID retrieves an account by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// GetProfile retrieves the patient profile for a user, materializing and
	// persisting a default profile on first access.
	GetProfile(userID string) (*models.PatientProfile, error)

	// UpdateUser applies a sparse patch to an account. The in-memory value
	// returned reflects the stored state after backend acknowledgment.
	UpdateUser(req models.UserUpdateRequest) (*models.User, error)
	// UpdateProfile applies a sparse patch to a patient profile. Nested
	// objects are replaced wholesale.
	UpdateProfile(userID string, req models.ProfileUpdateRequest) (*models.PatientProfile, error)

	// RevokeToken revokes the user's session token (logout).
	RevokeToken(userID string) error
	// ResetPassword triggers a best-effort password reset mail.
	ResetPassword(email string) error
	// DeleteUser removes an account and its profile.
	DeleteUser(userID string) error
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	UserRepo    userRepo.UserRepository
	ProfileRepo profileRepo.ProfileRepository
}

// RegistrationRequest carries signup input.
type RegistrationRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
	Phone    string          `json:"phone,omitempty"`
}

// AuthResponse is returned by login, signup, and session recovery.
type AuthResponse struct {
	ID      string                 `json:"id"`
	Token   string                 `json:"token"`
	User    *models.User           `json:"user"`
	Profile *models.PatientProfile `json:"profile,omitempty"`
}

// normalizeEmail lowercases and trims an address. Accounts are stored under
// the normalized form, so every lookup must pass through here to behave the
// same on both backends.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
