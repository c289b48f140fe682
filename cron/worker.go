package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"memoria/config"
	"memoria/models"
	"memoria/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// QueueDispatcher enqueues reminder pushes onto the asynq queue instead of
// sending them inline, so a slow or flaky FCM round-trip never blocks the
// sweep loop. It satisfies the reminder engine's Dispatcher interface.
type QueueDispatcher struct {
	client *asynq.Client
	notif  *notification.DefaultNotificationService
}

// NewQueueDispatcher creates a dispatcher backed by the reminder queue.
func NewQueueDispatcher(notif *notification.DefaultNotificationService) *QueueDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &QueueDispatcher{client: client, notif: notif}
}

// Ready reports whether a push can currently reach the user.
func (d *QueueDispatcher) Ready(userID string) bool {
	return d.notif.CanNotify(userID)
}

// Dispatch enqueues a reminder:send task for the worker to deliver.
func (d *QueueDispatcher) Dispatch(ctx context.Context, rem *models.Reminder) error {
	body := rem.Description
	if body == "" {
		body = fmt.Sprintf("It's time for: %s", rem.Title)
	}
	payload, err := json.Marshal(models.ReminderPayload{
		ReminderID: rem.ID,
		UserID:     rem.UserID,
		Title:      rem.Title,
		Body:       body,
		FireDate:   rem.ScheduledFor.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("dispatch: failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := d.client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("dispatch: failed to enqueue reminder task: %w", err)
	}
	return nil
}

// Close releases the queue connection.
func (d *QueueDispatcher) Close() error {
	return d.client.Close()
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[ReminderWorker] max retry attempts reached, queue dispatch disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] delivering reminder %s for user %s: %s", p.ReminderID, p.UserID, p.Title)

		data := map[string]string{
			"type":       "reminder",
			"reminderId": p.ReminderID,
			"fireDate":   p.FireDate,
		}

		if err := notifSvc.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] failed to send notification: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
