package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shiftwise/config"
	"shiftwise/models"
	shiftRepo "shiftwise/database/repository/shift"
	"shiftwise/services/notification"
	"shiftwise/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifSvc notification.NotificationService, shifts shiftRepo.ShiftRepository) {
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
	mux.HandleFunc(tasks.TypeShiftReminder, handleShiftReminder(notifSvc, shifts))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleShiftReminder fires one scheduled reminder. Reminders enqueued
// before an edit carry the old start minute, so the current shift is
// re-read and the task dropped if it no longer matches.
func handleShiftReminder(notifSvc notification.NotificationService, shifts shiftRepo.ShiftRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		current, err := shifts.GetByID(p.ShiftID)
		if err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to load shift %s: %v", p.ShiftID, err)
			return err
		}
		if current == nil {
			log.Printf("[ReminderHandler] 🗑 Shift %s no longer exists, dropping reminder", p.ShiftID)
			return nil
		}
		if current.Date != p.Date || current.Range.Start != p.Start {
			log.Printf("[ReminderHandler] 🗑 Shift %s was moved after enqueue, dropping stale reminder", p.ShiftID)
			return nil
		}

		log.Printf("[ReminderHandler] ⏰ Triggering reminder for worker %s → %s", p.WorkerID, p.Title)

		data := map[string]string{
			"type":    "shift_reminder",
			"shiftId": p.ShiftID,
			"date":    p.Date,
		}

		if err := notifSvc.SendWorkerPush(ctx, p.WorkerID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send notification: %v", err)
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
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
