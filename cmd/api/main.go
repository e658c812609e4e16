// The api command runs the GasLP service backend: HTTP API, event bus
// subscribers and, when enabled, the reminder worker.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Pepee912/GasLPNew/internal/audit"
	"github.com/Pepee912/GasLPNew/internal/catalog"
	"github.com/Pepee912/GasLPNew/internal/clients"
	apphttp "github.com/Pepee912/GasLPNew/internal/http"
	"github.com/Pepee912/GasLPNew/internal/http/router"
	"github.com/Pepee912/GasLPNew/internal/scheduler"
	"github.com/Pepee912/GasLPNew/internal/services"
	svcengine "github.com/Pepee912/GasLPNew/internal/services/service"
	"github.com/Pepee912/GasLPNew/platform/config"
	"github.com/Pepee912/GasLPNew/platform/db"
	"github.com/Pepee912/GasLPNew/platform/events"
	"github.com/Pepee912/GasLPNew/platform/logger"
	"github.com/Pepee912/GasLPNew/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := withRetry(ctx, log, "migrations", func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		return err
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database", func() error {
		var err error
		pool, err = db.NewPool(ctx, cfg)
		return err
	}); err != nil {
		return err
	}
	defer pool.Close()

	val := validator.New()
	bus := events.NewInMemoryBus(log)

	var sched svcengine.ReminderScheduler
	var worker *scheduler.Worker
	if cfg.IsSchedulerEnabled() {
		opt, err := scheduler.RedisOpt(cfg)
		if err != nil {
			return err
		}
		s := scheduler.New(opt, cfg, log)
		defer s.Close()
		sched = s
		worker = scheduler.NewWorker(opt, cfg.GetReminderQueue(), bus, log)
	}

	catalogModule := catalog.NewModule(pool, val, log)
	clientsModule := clients.NewModule(pool, val, log)
	servicesModule := services.NewModule(pool, services.Deps{
		Catalog:   catalogModule.Repository(),
		Clients:   clientsModule.Service(),
		Bus:       bus,
		Scheduler: sched,
	}, val, log)
	auditModule := audit.NewModule(pool, bus, log)

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: pool,
		Modules: []apphttp.Module{
			catalogModule,
			clientsModule,
			servicesModule,
			auditModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("http server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if worker != nil {
		group.Go(func() error {
			log.Info("reminder worker starting", "queue", cfg.GetReminderQueue())
			return worker.Run()
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if worker != nil {
			worker.Shutdown()
		}
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// withRetry runs fn with exponential backoff. Startup dependencies come
// up in arbitrary order under compose; retrying beats crash-looping.
func withRetry(ctx context.Context, log *logger.Logger, name string, fn func() error) error {
	const attempts = 5
	delay := time.Second

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		log.Warn("startup step failed, retrying", "step", name, "attempt", i, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
