package models

import "time"

// UserRole distinguishes the three kinds of accounts on the platform.
type UserRole string

const (
	RolePatient            UserRole = "patient"
	RoleCaregiver          UserRole = "caregiver"
	RoleHealthcareProvider UserRole = "healthcare_provider"
)

// User represents a platform account: a patient, a caregiver, or a
// healthcare provider.
type User struct {
	ID               string            `bson:"id" json:"id"`
	Name             string            `bson:"name" json:"name"`
	Email            string            `bson:"email" json:"email"`
	Role             UserRole          `bson:"role" json:"role"`
	Avatar           string            `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Phone            string            `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash     string            `bson:"passwordHash" json:"-"`
	FCMToken         string            `bson:"fcmToken,omitempty" json:"-"`
	Preferences      UserPreferences   `bson:"preferences" json:"preferences"`
	EmergencyContact *EmergencyContact `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// UserPreferences is the accessibility and notification flag bag carried on
// every account.
type UserPreferences struct {
	LargeText            bool   `bson:"largeText" json:"largeText"`
	HighContrast         bool   `bson:"highContrast" json:"highContrast"`
	ReducedMotion        bool   `bson:"reducedMotion" json:"reducedMotion"`
	VoiceGuidance        bool   `bson:"voiceGuidance" json:"voiceGuidance"`
	ReminderFrequency    string `bson:"reminderFrequency" json:"reminderFrequency"` // gentle | standard | frequent
	Language             string `bson:"language" json:"language"`
	NotificationsEnabled bool   `bson:"notificationsEnabled" json:"notificationsEnabled"`
	EmailNotifications   bool   `bson:"emailNotifications" json:"emailNotifications"`
	SMSNotifications     bool   `bson:"smsNotifications" json:"smsNotifications"`
}

// EmergencyContact is the person to reach when a safety event fires.
type EmergencyContact struct {
	Name         string `bson:"name" json:"name"`
	Relationship string `bson:"relationship" json:"relationship"`
	Phone        string `bson:"phone" json:"phone"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	IsPrimary    bool   `bson:"isPrimary" json:"isPrimary"`
}

// DefaultPreferences returns the preference flags assigned at signup.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		ReminderFrequency:    "standard",
		Language:             "en",
		NotificationsEnabled: true,
		EmailNotifications:   true,
	}
}

// UserUpdateRequest is a sparse patch against a User. Nil fields are left
// untouched; non-nil fields replace the stored value wholesale.
type UserUpdateRequest struct {
	ID               *string           `json:"id"`
	Name             *string           `json:"name,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	Avatar           *string           `json:"avatar,omitempty"`
	FCMToken         *string           `json:"fcmToken,omitempty"`
	Preferences      *UserPreferences  `json:"preferences,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
}
