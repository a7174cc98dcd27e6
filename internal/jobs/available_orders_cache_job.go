package jobs

import (
	"context"
	"log/slog"

	"pedidos/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AvailableOrdersCacheJob keeps the Redis listing of claimable orders fresh.
// Runs every five seconds, replacing the cached listing with the database's
// current set of pending orders.
type AvailableOrdersCacheJob struct {
	repository ports.OrderRepository
	cache      ports.OrderCache
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAvailableOrdersCacheJob creates the cache refresh job.
func NewAvailableOrdersCacheJob(
	repository ports.OrderRepository,
	cache ports.OrderCache,
	logger *slog.Logger,
) *AvailableOrdersCacheJob {
	return &AvailableOrdersCacheJob{
		repository: repository,
		cache:      cache,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "available_orders_cache_job"),
	}
}

// Start begins the refresh job, running every five seconds.
func (j *AvailableOrdersCacheJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Available orders cache refresh failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Available orders cache job started (running every 5 seconds)")
	return nil
}

// Stop stops the refresh job.
func (j *AvailableOrdersCacheJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Available orders cache job stopped")
}

func (j *AvailableOrdersCacheJob) refresh(ctx context.Context) error {
	pending, err := j.repository.GetAllPending(ctx)
	if err != nil {
		return err
	}

	return j.cache.SetAvailableOrders(ctx, pending)
}
