package main

import (
	"context"

	"memoria/models"
	"memoria/services/notification"
)

// inlineDispatcher sends pushes directly instead of through the asynq
// queue. Used when Redis is not configured, e.g. in local-only mode.
type inlineDispatcher struct {
	notif *notification.DefaultNotificationService
}

func (d *inlineDispatcher) Ready(userID string) bool {
	return d.notif.CanNotify(userID)
}

func (d *inlineDispatcher) Dispatch(ctx context.Context, rem *models.Reminder) error {
	return d.notif.SendReminderPush(ctx, rem)
}
