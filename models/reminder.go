package models

import "time"

// ReminderType classifies what a reminder is for.
type ReminderType string

const (
	ReminderMedication  ReminderType = "medication"
	ReminderRoutine     ReminderType = "routine"
	ReminderAppointment ReminderType = "appointment"
	ReminderCustom      ReminderType = "custom"
)

// Reminder is a scheduled, user-visible task notification.
//
// Snoozing sets SnoozedUntil without touching ScheduledFor; completion is
// terminal for the instance. LastNotifiedAt records the one-shot dispatch so
// a delayed sweep can never notify twice for the same crossing.
type Reminder struct {
	ID                  string       `bson:"id" json:"id"`
	UserID              string       `bson:"userId" json:"userId"`
	Title               string       `bson:"title" json:"title"`
	Description         string       `bson:"description,omitempty" json:"description,omitempty"`
	Type                ReminderType `bson:"type" json:"type"`
	ScheduledFor        time.Time    `bson:"scheduledFor" json:"scheduledFor"`
	Recurring           bool         `bson:"recurring" json:"recurring"`
	RecurrencePattern   string       `bson:"recurrencePattern,omitempty" json:"recurrencePattern,omitempty"`
	NotificationMethods []string     `bson:"notificationMethods" json:"notificationMethods"` // push | email | sms
	Completed           bool         `bson:"completed" json:"completed"`
	SnoozedUntil        *time.Time   `bson:"snoozedUntil,omitempty" json:"snoozedUntil,omitempty"`
	LastNotifiedAt      *time.Time   `bson:"lastNotifiedAt,omitempty" json:"lastNotifiedAt,omitempty"`
	CreatedAt           time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// ReminderUpdateRequest is a sparse patch against a Reminder. Nil fields are
// left untouched.
type ReminderUpdateRequest struct {
	Title               *string       `json:"title,omitempty"`
	Description         *string       `json:"description,omitempty"`
	Type                *ReminderType `json:"type,omitempty"`
	ScheduledFor        *time.Time    `json:"scheduledFor,omitempty"`
	Recurring           *bool         `json:"recurring,omitempty"`
	RecurrencePattern   *string       `json:"recurrencePattern,omitempty"`
	NotificationMethods *[]string     `json:"notificationMethods,omitempty"`
}

// ReminderPayload is the body of a queued reminder:send task.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}
