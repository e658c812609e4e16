// Package scheduler enqueues and processes service-day reminders on
// asynq. Enqueueing is fire and forget: a broker failure never fails
// the mutation that triggered it.
package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeServiceReminder is the asynq task type for service-day reminders.
const TypeServiceReminder = "reminder:service_day"

// ServiceReminderPayload is the task payload.
type ServiceReminderPayload struct {
	ServiceID       int64     `json:"service_id"`
	DocumentID      string    `json:"document_id"`
	FechaProgramado time.Time `json:"fecha_programado"`
}

// NewServiceReminderTask builds the reminder task. The task id encodes
// the scheduled day so a reschedule enqueues a fresh task instead of
// colliding with the stale one.
func NewServiceReminderTask(payload ServiceReminderPayload) (*asynq.Task, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("marshal reminder payload: %w", err)
	}
	taskID := fmt.Sprintf("service-reminder-%d-%d", payload.ServiceID, payload.FechaProgramado.Unix())
	return asynq.NewTask(TypeServiceReminder, data), taskID, nil
}
