package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AnalyticsSource is the slice of the analytics service the warmer needs.
type AnalyticsSource interface {
	Warm(ctx context.Context)
}

// AnalyticsWarmer refreshes the cached revenue and dashboard views on a
// fixed interval so the console does not pay the backend round trip on
// every page load.
type AnalyticsWarmer struct {
	analytics AnalyticsSource
	logger    *zap.Logger
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewAnalyticsWarmer constructs a warmer.
func NewAnalyticsWarmer(analytics AnalyticsSource, logger *zap.Logger, interval time.Duration) *AnalyticsWarmer {
	ctx, cancel := context.WithCancel(context.Background())
	return &AnalyticsWarmer{
		analytics: analytics,
		logger:    logger,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the warm loop in its own goroutine.
func (w *AnalyticsWarmer) Start() {
	w.logger.Info("starting analytics warmer", zap.Duration("interval", w.interval))
	w.wg.Add(1)
	go w.run()
}

// Stop cancels the loop and waits for it to exit.
func (w *AnalyticsWarmer) Stop() {
	w.cancel()
	w.wg.Wait()
	w.logger.Info("analytics warmer stopped")
}

func (w *AnalyticsWarmer) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// First refresh immediately, no waiting for the first tick.
	w.warm()

	for {
		select {
		case <-ticker.C:
			w.warm()
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *AnalyticsWarmer) warm() {
	ctx, cancel := context.WithTimeout(w.ctx, 30*time.Second)
	defer cancel()

	w.analytics.Warm(ctx)
}
