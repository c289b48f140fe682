package models

import "time"

// PatientProfile is the care record owned 1:1 by a patient account. It is
// separate from the login identity: the profile holds orientation and
// care-preference data, not credentials.
type PatientProfile struct {
	ID              string          `bson:"id" json:"id"`
	UserID          string          `bson:"userId" json:"userId"`
	DateOfBirth     time.Time       `bson:"dateOfBirth" json:"dateOfBirth"`
	DiagnosisDate   *time.Time      `bson:"diagnosisDate,omitempty" json:"diagnosisDate,omitempty"`
	DementiaStage   string          `bson:"dementiaStage" json:"dementiaStage"` // early | moderate | advanced | not_diagnosed
	PrimaryDoctor   *DoctorInfo     `bson:"primaryDoctor,omitempty" json:"primaryDoctor,omitempty"`
	Medications     []Medication    `bson:"medications" json:"medications"`
	Routines        []Routine       `bson:"routines" json:"routines"`
	Memories        []Memory        `bson:"memories" json:"memories"`
	MoodHistory     []MoodEntry     `bson:"moodHistory" json:"moodHistory"`
	FavoriteMusic   []string        `bson:"favoriteMusic" json:"favoriteMusic"`
	Hobbies         []string        `bson:"hobbies" json:"hobbies"`
	ComfortItems    []string        `bson:"comfortItems" json:"comfortItems"`
	Allergies       []string        `bson:"allergies" json:"allergies"`
	IdentityProfile *IdentityCard   `bson:"identityProfile,omitempty" json:"identityProfile,omitempty"`
	FamiliarFaces   []FamiliarFace  `bson:"familiarFaces" json:"familiarFaces"`
	LocationInfo    *LocationInfo   `bson:"locationInfo,omitempty" json:"locationInfo,omitempty"`
	CalmingMessage  *CalmingMessage `bson:"calmingMessage,omitempty" json:"calmingMessage,omitempty"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// IdentityCard backs the "Who I Am" screen.
type IdentityCard struct {
	PreferredName    string   `bson:"preferredName" json:"preferredName"`
	PhotoURL         string   `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Affirmation      string   `bson:"affirmation" json:"affirmation"`
	LifeStory        string   `bson:"lifeStory,omitempty" json:"lifeStory,omitempty"`
	FormerOccupation string   `bson:"formerOccupation,omitempty" json:"formerOccupation,omitempty"`
	FavoriteThings   []string `bson:"favoriteThings" json:"favoriteThings"`
}

// FamiliarFace is one entry in the recognition-support gallery.
type FamiliarFace struct {
	ID               string `bson:"id" json:"id"`
	Name             string `bson:"name" json:"name"`
	Relationship     string `bson:"relationship" json:"relationship"`
	PhotoURL         string `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Description      string `bson:"description,omitempty" json:"description,omitempty"`
	ContactInfo      string `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	VisitFrequency   string `bson:"visitFrequency,omitempty" json:"visitFrequency,omitempty"`
	IsPrimaryContact bool   `bson:"isPrimaryContact" json:"isPrimaryContact"`
}

// LocationInfo orients the patient: where they are and which places are safe.
type LocationInfo struct {
	CurrentLocation string   `bson:"currentLocation" json:"currentLocation"`
	Address         string   `bson:"address" json:"address"`
	City            string   `bson:"city" json:"city"`
	State           string   `bson:"state" json:"state"`
	HomeDescription string   `bson:"homeDescription,omitempty" json:"homeDescription,omitempty"`
	SafePlaces      []string `bson:"safePlaces" json:"safePlaces"`
	EmergencyExits  []string `bson:"emergencyExits,omitempty" json:"emergencyExits,omitempty"`
}

// CalmingMessage configures the reassurance banner on the dashboard.
type CalmingMessage struct {
	Enabled         bool   `bson:"enabled" json:"enabled"`
	MessageType     string `bson:"messageType" json:"messageType"` // faith_neutral | spiritual | custom
	CustomMessage   string `bson:"customMessage,omitempty" json:"customMessage,omitempty"`
	FaithTradition  string `bson:"faithTradition,omitempty" json:"faithTradition,omitempty"`
	ShowOnDashboard bool   `bson:"showOnDashboard" json:"showOnDashboard"`
}

// DoctorInfo identifies the patient's primary physician.
type DoctorInfo struct {
	Name      string `bson:"name" json:"name"`
	Specialty string `bson:"specialty" json:"specialty"`
	Phone     string `bson:"phone" json:"phone"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Clinic    string `bson:"clinic,omitempty" json:"clinic,omitempty"`
}

// Medication is one prescription tracked on the profile.
type Medication struct {
	ID               string    `bson:"id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Dosage           string    `bson:"dosage" json:"dosage"`
	Form             string    `bson:"form" json:"form"`
	Frequency        string    `bson:"frequency" json:"frequency"`
	Times            []string  `bson:"times" json:"times"`
	Instructions     string    `bson:"instructions,omitempty" json:"instructions,omitempty"`
	PrescribedBy     string    `bson:"prescribedBy,omitempty" json:"prescribedBy,omitempty"`
	StartDate        time.Time `bson:"startDate" json:"startDate"`
	EndDate          *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	RemindersEnabled bool      `bson:"remindersEnabled" json:"remindersEnabled"`
}

// Routine is one recurring daily activity on the profile.
type Routine struct {
	ID          string   `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Category    string   `bson:"category" json:"category"` // morning | afternoon | evening | night | custom
	Time        string   `bson:"time" json:"time"`
	Days        []string `bson:"days" json:"days"`
	Steps       []string `bson:"steps,omitempty" json:"steps,omitempty"`
	IsRecurring bool     `bson:"isRecurring" json:"isRecurring"`
}

// Memory is one entry in the memory album.
type Memory struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	PhotoURLs   []string  `bson:"photoUrls,omitempty" json:"photoUrls,omitempty"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	IsFavorite  bool      `bson:"isFavorite" json:"isFavorite"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// MoodEntry is one logged mood observation.
type MoodEntry struct {
	ID        string    `bson:"id" json:"id"`
	Mood      string    `bson:"mood" json:"mood"`
	Intensity int       `bson:"intensity" json:"intensity"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ProfileUpdateRequest is a sparse patch against a PatientProfile. Nil fields
// are left untouched. Nested objects are replaced wholesale, never
// deep-merged: sending LocationInfo replaces the entire stored LocationInfo.
type ProfileUpdateRequest struct {
	DateOfBirth     *time.Time      `json:"dateOfBirth,omitempty"`
	DiagnosisDate   *time.Time      `json:"diagnosisDate,omitempty"`
	DementiaStage   *string         `json:"dementiaStage,omitempty"`
	PrimaryDoctor   *DoctorInfo     `json:"primaryDoctor,omitempty"`
	Medications     *[]Medication   `json:"medications,omitempty"`
	Routines        *[]Routine      `json:"routines,omitempty"`
	Memories        *[]Memory       `json:"memories,omitempty"`
	MoodHistory     *[]MoodEntry    `json:"moodHistory,omitempty"`
	FavoriteMusic   *[]string       `json:"favoriteMusic,omitempty"`
	Hobbies         *[]string       `json:"hobbies,omitempty"`
	ComfortItems    *[]string       `json:"comfortItems,omitempty"`
	Allergies       *[]string       `json:"allergies,omitempty"`
	IdentityProfile *IdentityCard   `json:"identityProfile,omitempty"`
	FamiliarFaces   *[]FamiliarFace `json:"familiarFaces,omitempty"`
	LocationInfo    *LocationInfo   `json:"locationInfo,omitempty"`
	CalmingMessage  *CalmingMessage `json:"calmingMessage,omitempty"`
}
