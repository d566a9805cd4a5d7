package engine

import (
	"context"
	"log/slog"
	"time"
)

// ReconcilerConfig holds the drift-correction settings.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically re-runs the engine's adoption scan and
// work-area sync, so the collection tracks reality even when root
// events were missed.
type Reconciler struct {
	interval time.Duration
	engine   *Engine
	logger   *slog.Logger
}

// NewReconciler creates a reconciler driving eng.
func NewReconciler(cfg ReconcilerConfig, eng *Engine) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{interval: interval, engine: eng, logger: logger}
}

// Run starts the reconciliation loop. Blocks until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single pass. Panics are recovered so a bad X
// reply cannot take the daemon down.
func (r *Reconciler) reconcile() {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()
	r.engine.Reconcile()
}

// ReconcileNow triggers an immediate pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
