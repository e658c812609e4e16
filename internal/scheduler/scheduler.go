package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/Pepee912/GasLPNew/platform/config"
	"github.com/Pepee912/GasLPNew/platform/logger"
)

// Scheduler enqueues service-day reminders. It implements the services
// module's ReminderScheduler interface.
type Scheduler struct {
	client *asynq.Client
	queue  string
	lead   time.Duration
	log    *logger.Logger
}

// RedisOpt parses the configured Redis URL into asynq connection options.
func RedisOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	parsed, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	return asynq.RedisClientOpt{
		Addr:     parsed.Addr,
		Username: parsed.Username,
		Password: parsed.Password,
		DB:       parsed.DB,
	}, nil
}

// New creates a reminder scheduler.
func New(opt asynq.RedisClientOpt, cfg config.SchedulerConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(opt),
		queue:  cfg.GetReminderQueue(),
		lead:   cfg.GetReminderLead(),
		log:    log,
	}
}

// Close releases the broker connection.
func (s *Scheduler) Close() error {
	return s.client.Close()
}

// ScheduleServiceReminder enqueues a reminder to fire at the scheduled
// time minus the configured lead. Services already due are skipped.
func (s *Scheduler) ScheduleServiceReminder(ctx context.Context, serviceID int64, documentID string, fechaProgramado time.Time) error {
	runAt := fechaProgramado.Add(-s.lead)
	if !runAt.After(time.Now()) {
		s.log.Debug("reminder skipped, service already due", "servicio", documentID)
		return nil
	}

	task, taskID, err := NewServiceReminderTask(ServiceReminderPayload{
		ServiceID:       serviceID,
		DocumentID:      documentID,
		FechaProgramado: fechaProgramado,
	})
	if err != nil {
		return err
	}

	_, err = s.client.EnqueueContext(ctx, task,
		asynq.Queue(s.queue),
		asynq.TaskID(taskID),
		asynq.ProcessAt(runAt),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// Same service, same day: already scheduled.
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info("reminder scheduled", "servicio", documentID, "run_at", runAt)
	return nil
}
