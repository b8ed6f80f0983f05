package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultExpirySchedule  = "0 * * * * *"
	DefaultPendingOrderTTL = 30 * time.Minute
	DefaultExpiryBatchSize = 100
)

type (
	pendingOrderExpirer interface {
		Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (int, error)
	}

	expiryObserver interface {
		ObserveExpired(count int)
	}
)

// PendingOrderExpiryConfig controls how often and how aggressively stale orders are cancelled.
type PendingOrderExpiryConfig struct {
	Schedule  string
	TTL       time.Duration
	BatchSize int
}

func (c PendingOrderExpiryConfig) withDefaults() PendingOrderExpiryConfig {
	if c.Schedule == "" {
		c.Schedule = DefaultExpirySchedule
	}
	if c.TTL <= 0 {
		c.TTL = DefaultPendingOrderTTL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultExpiryBatchSize
	}
	return c
}

// PendingOrderExpiryJob cancels orders that stayed PENDING and unpaid longer than the TTL.
type PendingOrderExpiryJob struct {
	handler  pendingOrderExpirer
	observer expiryObserver
	config   PendingOrderExpiryConfig
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPendingOrderExpiryJob creates the job. observer may be nil.
func NewPendingOrderExpiryJob(
	handler pendingOrderExpirer,
	observer expiryObserver,
	config PendingOrderExpiryConfig,
	logger *slog.Logger,
) *PendingOrderExpiryJob {
	return &PendingOrderExpiryJob{
		handler:  handler,
		observer: observer,
		config:   config.withDefaults(),
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_order_expiry_job"),
	}
}

// Start schedules the job. An invalid cron expression is returned as is.
func (j *PendingOrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order expiry job started",
		"schedule", j.config.Schedule, "ttl", j.config.TTL.String())
	return nil
}

// RunOnce cancels one batch of stale orders and returns how many were cancelled.
func (j *PendingOrderExpiryJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpirePendingOrdersCommand(j.now().Add(-j.config.TTL), j.config.BatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order expiry job misconfigured", "error", err)
		return 0, err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order expiry job failed", "error", err)
		return 0, err
	}

	if j.observer != nil {
		j.observer.ObserveExpired(expired)
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired pending orders", "count", expired)
	}
	return expired, nil
}

// Stop waits for a running batch to finish.
func (j *PendingOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending order expiry job stopped")
}
