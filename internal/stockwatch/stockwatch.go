// Package stockwatch periodically reports menu items that need restocking.
package stockwatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cafe-pos/internal/metrics"
	"cafe-pos/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// sweepTimeout bounds a single low-stock query.
const sweepTimeout = 10 * time.Second

// LowStockSource lists menu items at or below their restock threshold.
type LowStockSource interface {
	LowStock(ctx context.Context) ([]model.LowStockItem, error)
}

// Watcher runs the low-stock sweep on a cron schedule.
type Watcher struct {
	source  LowStockSource
	metrics *metrics.Metrics
	logger  zerolog.Logger
	sched   *cron.Cron

	mu      sync.Mutex
	started bool
}

// New creates a watcher that sweeps on the given schedule. The schedule uses
// standard cron syntax or a descriptor such as "@every 15m".
func New(source LowStockSource, m *metrics.Metrics, schedule string, logger zerolog.Logger) (*Watcher, error) {
	w := &Watcher{
		source:  source,
		metrics: m,
		logger:  logger.With().Str("component", "stockwatch").Logger(),
		sched:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	if _, err := w.sched.AddFunc(schedule, func() { w.Sweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid stockwatch schedule %q: %w", schedule, err)
	}

	return w, nil
}

// Start runs an initial sweep and starts the scheduler.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true

	w.Sweep(ctx)
	w.sched.Start()
	w.logger.Info().Msg("stockwatch started")
}

// Stop stops the scheduler and waits for a running sweep to finish or ctx to
// expire.
func (w *Watcher) Stop(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false

	select {
	case <-w.sched.Stop().Done():
		w.logger.Info().Msg("stockwatch stopped")
	case <-ctx.Done():
		w.logger.Warn().Err(ctx.Err()).Msg("stockwatch stop timed out")
	}
}

// Sweep queries low-stock items once, logs each of them and updates the
// low-stock gauge. It returns the number of items found.
func (w *Watcher) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	items, err := w.source.LowStock(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("low stock sweep failed")
		return 0
	}

	for _, item := range items {
		w.logger.Warn().
			Int64("menu_item_id", item.ID).
			Str("name", item.Name).
			Int("stock", item.Stock).
			Int("min_stock", item.MinStock).
			Msg("menu item needs restocking")
	}

	w.metrics.SetLowStockItems(len(items))
	return len(items)
}
