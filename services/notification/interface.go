package notification

import (
	"context"
	"fmt"

	"memoria/models"
	"memoria/utils"

	userRepo "memoria/database/repository/user"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	CanNotify(userID string) bool
}

// DefaultNotificationService is the production implementation. It resolves
// push targets through the user repository so tokens and preference toggles
// are always read fresh.
type DefaultNotificationService struct {
	users userRepo.UserRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{users: users}, nil
}

// CanNotify reports whether a push can reach the user: Firebase must be
// configured, the user must have a registered device token, and
// notifications must be enabled in their preferences.
func (s *DefaultNotificationService) CanNotify(userID string) bool {
	if utils.FCMClient == nil {
		return false
	}
	u, err := s.users.GetByID(userID)
	if err != nil || u == nil {
		return false
	}
	return u.FCMToken != "" && u.Preferences.NotificationsEnabled
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("SendUserPushNotification: push messaging is not configured")
	}

	u, err := s.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u == nil {
		return fmt.Errorf("SendUserPushNotification: user %s not found", userID)
	}
	token := u.FCMToken
	if token == "" {
		return fmt.Errorf("SendUserPushNotification: user %s has no FCM token", userID)
	}
	if !u.Preferences.NotificationsEnabled {
		return fmt.Errorf("SendUserPushNotification: user %s has notifications disabled", userID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = string(u.Role)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "reminders",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// SendReminderPush renders a reminder into a push message. The reminder ID
// travels in the data payload so the client can open the right screen.
func (s *DefaultNotificationService) SendReminderPush(ctx context.Context, rem *models.Reminder) error {
	body := rem.Description
	if body == "" {
		body = fmt.Sprintf("It's time for: %s", rem.Title)
	}
	return s.SendUserPushNotification(ctx, rem.UserID, rem.Title, body, map[string]string{
		"type":       "reminder",
		"reminderId": rem.ID,
	})
}
