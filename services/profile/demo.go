package profile

import (
	"time"

	"memoria/models"
	"memoria/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Demo account IDs are fixed so reminders and caregiver links can refer to
// them across restarts of the local store.
const (
	DemoPatientID   = "demo-patient-margaret"
	DemoCaregiverID = "demo-caregiver-sarah"
	DemoPassword    = "password"
)

// SeedDemoAccounts provisions the demo patient and caregiver accounts used
// when the server runs against the local store. Seeding is idempotent:
// existing accounts are left alone.
func (s *DefaultProfileService) SeedDemoAccounts() error {
	logger := utils.GetLogger()

	existing, err := s.UserRepo.GetByEmail("margaret@example.com")
	if err != nil {
		return BackendError{Op: "demo seed", Err: err}
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return BackendError{Op: "demo seed", Err: err}
	}

	margaret := models.User{
		ID:           DemoPatientID,
		Name:         "Margaret Johnson",
		Email:        "margaret@example.com",
		Role:         models.RolePatient,
		Phone:        "(555) 123-4567",
		PasswordHash: string(hash),
		Preferences: models.UserPreferences{
			LargeText:            true,
			VoiceGuidance:        true,
			ReminderFrequency:    "gentle",
			Language:             "en",
			NotificationsEnabled: true,
			EmailNotifications:   true,
		},
		EmergencyContact: &models.EmergencyContact{
			Name:         "Sarah Johnson",
			Relationship: "Daughter",
			Phone:        "(555) 987-6543",
			Email:        "sarah@example.com",
			IsPrimary:    true,
		},
	}
	if err := s.UserRepo.Create(&margaret); err != nil {
		return BackendError{Op: "demo seed", Err: err}
	}

	sarah := models.User{
		ID:           DemoCaregiverID,
		Name:         "Sarah Johnson",
		Email:        "sarah@example.com",
		Role:         models.RoleCaregiver,
		Phone:        "(555) 987-6543",
		PasswordHash: string(hash),
		Preferences: models.UserPreferences{
			ReminderFrequency:    "standard",
			Language:             "en",
			NotificationsEnabled: true,
			EmailNotifications:   true,
			SMSNotifications:     true,
		},
	}
	if err := s.UserRepo.Create(&sarah); err != nil {
		return BackendError{Op: "demo seed", Err: err}
	}

	if err := s.ProfileRepo.Create(demoPatientProfile()); err != nil {
		return BackendError{Op: "demo seed", Err: err}
	}

	logger.Info("Seeded demo accounts", zap.String("patient", DemoPatientID))
	return nil
}

func demoPatientProfile() *models.PatientProfile {
	diagnosis := time.Date(2022, 6, 10, 0, 0, 0, 0, time.UTC)
	return &models.PatientProfile{
		ID:            "p_" + DemoPatientID,
		UserID:        DemoPatientID,
		DateOfBirth:   time.Date(1950, 3, 15, 0, 0, 0, 0, time.UTC),
		DiagnosisDate: &diagnosis,
		DementiaStage: "early",
		PrimaryDoctor: &models.DoctorInfo{
			Name:      "Dr. Sarah Smith",
			Specialty: "Neurology",
			Phone:     "(555) 234-5678",
			Email:     "dr.smith@clinic.com",
			Clinic:    "Memorial Neurology Center",
		},
		Medications:   []models.Medication{},
		Routines:      []models.Routine{},
		Memories:      []models.Memory{},
		MoodHistory:   []models.MoodEntry{},
		FavoriteMusic: []string{"Frank Sinatra", "Jazz Classics", "Classical Piano"},
		Hobbies:       []string{"Gardening", "Knitting", "Reading"},
		ComfortItems:  []string{"Family Photos", "Favorite Blanket", "Tea"},
		Allergies:     []string{"Penicillin"},
		IdentityProfile: &models.IdentityCard{
			PreferredName:    "Maggie",
			Affirmation:      "You are safe. You are at home. You are loved.",
			LifeStory:        "Maggie worked as a school teacher for 35 years. She loves gardening, reading mystery novels, and spending time with her grandchildren.",
			FormerOccupation: "School Teacher",
			FavoriteThings:   []string{"Gardening", "Mystery Novels", "Classical Music", "Tea", "Family Photos"},
		},
		FamiliarFaces: []models.FamiliarFace{
			{
				ID:               "f1",
				Name:             "Sarah Johnson",
				Relationship:     "Daughter",
				Description:      "Sarah visits every weekend and brings fresh flowers.",
				ContactInfo:      "(555) 987-6543",
				VisitFrequency:   "Weekends",
				IsPrimaryContact: true,
			},
			{
				ID:             "f2",
				Name:           "Michael Johnson",
				Relationship:   "Son",
				Description:    "Michael calls every Tuesday evening.",
				ContactInfo:    "(555) 456-7890",
				VisitFrequency: "Monthly",
			},
			{
				ID:             "f3",
				Name:           "Emma Johnson",
				Relationship:   "Granddaughter",
				Description:    "Emma loves to hear stories about when you were young.",
				ContactInfo:    "(555) 234-5678",
				VisitFrequency: "Holidays",
			},
		},
		LocationInfo: &models.LocationInfo{
			CurrentLocation: "Home",
			Address:         "123 Oak Street",
			City:            "Raleigh",
			State:           "North Carolina",
			HomeDescription: "You live in a cozy house with a beautiful garden in the backyard. Your bedroom is upstairs.",
			SafePlaces:      []string{"Living Room", "Kitchen", "Garden", "Bedroom"},
			EmergencyExits:  []string{"Front Door", "Back Door", "Kitchen Door"},
		},
		CalmingMessage: &models.CalmingMessage{
			Enabled:         true,
			MessageType:     "faith_neutral",
			CustomMessage:   "You are safe. You are loved. Everything is okay.",
			ShowOnDashboard: true,
		},
	}
}
