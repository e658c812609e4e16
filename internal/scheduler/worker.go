package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	svcevents "github.com/Pepee912/GasLPNew/internal/services/service"
	"github.com/Pepee912/GasLPNew/platform/events"
	"github.com/Pepee912/GasLPNew/platform/logger"
)

// Worker processes reminder tasks. Delivery channels stay external; the
// worker logs the reminder and publishes an event for the audit trail.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	bus events.Bus
	log *logger.Logger
}

// NewWorker creates the reminder worker bound to the configured queue.
func NewWorker(opt asynq.RedisClientOpt, queue string, bus events.Bus, log *logger.Logger) *Worker {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{queue: 1},
	})

	w := &Worker{srv: srv, mux: asynq.NewServeMux(), bus: bus, log: log}
	w.mux.HandleFunc(TypeServiceReminder, w.handleServiceReminder)
	return w
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown drains in-flight tasks and stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleServiceReminder(ctx context.Context, t *asynq.Task) error {
	var payload ServiceReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal reminder payload: %w", err)
	}

	w.log.Info("service reminder due",
		"servicio", payload.DocumentID,
		"fecha_programado", payload.FechaProgramado,
	)
	w.bus.Publish(ctx, svcevents.ServiceReminderDueEvent{
		BaseEvent:       events.NewBaseEvent(),
		ServiceID:       payload.ServiceID,
		DocumentID:      payload.DocumentID,
		FechaProgramado: payload.FechaProgramado,
	})
	return nil
}
