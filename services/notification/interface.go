package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"

	workerRepo "shiftwise/database/repository/worker"
	"shiftwise/models"
	"shiftwise/utils"
)

// NotificationService defines methods for sending FCM pushes to workers.
type NotificationService interface {
	SendWorkerPush(ctx context.Context, workerID, title, body string, data map[string]string) error
	NotifyShiftAssigned(ctx context.Context, shift models.Shift) error
	NotifyShiftChanged(ctx context.Context, shift models.Shift) error
	NotifyShiftCancelled(ctx context.Context, shift models.Shift) error
}

// DefaultNotificationService is the production implementation. It reads
// tokens straight from the worker repository so it stays decoupled from
// the worker service.
type DefaultNotificationService struct {
	workers workerRepo.WorkerRepository
}

func NewDefaultNotificationService(workers workerRepo.WorkerRepository) (*DefaultNotificationService, error) {
	if workers == nil {
		return nil, fmt.Errorf("notification service initialization error: worker repository is nil")
	}
	return &DefaultNotificationService{workers: workers}, nil
}

// SendWorkerPush looks up a worker's FCM token and sends a push.
func (s *DefaultNotificationService) SendWorkerPush(
	ctx context.Context,
	workerID, title, body string,
	data map[string]string,
) error {
	w, err := s.workers.GetByIDWithProjection(workerID, bson.M{"fcmToken": 1, "id": 1})
	if err != nil {
		return fmt.Errorf("SendWorkerPush: could not find worker %s: %w", workerID, err)
	}
	if w.FCMToken == "" {
		return fmt.Errorf("SendWorkerPush: worker %s has no FCM token", workerID)
	}

	if data == nil {
		data = map[string]string{}
	}

	msg := &messaging.Message{
		Token: w.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "shifts",
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
		return fmt.Errorf("SendWorkerPush: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyShiftAssigned tells a worker about a newly scheduled shift.
func (s *DefaultNotificationService) NotifyShiftAssigned(ctx context.Context, shift models.Shift) error {
	title := "New shift scheduled"
	body := fmt.Sprintf("You work %s on %s.", shiftSpan(shift), shift.Date)
	return s.SendWorkerPush(ctx, shift.WorkerID, title, body, shiftData("shift_assigned", shift))
}

// NotifyShiftChanged tells a worker their shift moved.
func (s *DefaultNotificationService) NotifyShiftChanged(ctx context.Context, shift models.Shift) error {
	title := "Shift updated"
	body := fmt.Sprintf("Your shift on %s is now %s.", shift.Date, shiftSpan(shift))
	return s.SendWorkerPush(ctx, shift.WorkerID, title, body, shiftData("shift_changed", shift))
}

// NotifyShiftCancelled tells a worker their shift was dropped.
func (s *DefaultNotificationService) NotifyShiftCancelled(ctx context.Context, shift models.Shift) error {
	title := "Shift cancelled"
	body := fmt.Sprintf("Your %s shift on %s was cancelled.", shiftSpan(shift), shift.Date)
	return s.SendWorkerPush(ctx, shift.WorkerID, title, body, shiftData("shift_cancelled", shift))
}

func shiftSpan(shift models.Shift) string {
	return shift.Range.StartLabel() + " - " + shift.Range.EndLabel()
}

func shiftData(event string, shift models.Shift) map[string]string {
	return map[string]string{
		"type":    event,
		"shiftId": shift.ID,
		"date":    shift.Date,
	}
}
