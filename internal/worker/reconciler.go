package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/undangan/internal/domain/model"
)

// ReconcileFacade exposes the subset of application functionality required by the reconciler.
type ReconcileFacade interface {
	StalePendingOrders(ctx context.Context, limit int) ([]model.Order, error)
	ReconcileOrder(ctx context.Context, reference string) error
}

// Reconciler periodically asks the gateway about orders still pending and
// applies the answer, recovering orders whose notifications were lost.
type Reconciler struct {
	facade    ReconcileFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs     chan string
	inflight map[string]struct{}
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
}

// NewReconciler constructs the reconciler worker pool.
func NewReconciler(facade ReconcileFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan string, batchSize),
		inflight:  make(map[string]struct{}),
	}
}

// Enabled reports whether the reconciler has a positive interval.
func (r *Reconciler) Enabled() bool {
	return r.interval > 0
}

// Start launches background reconciliation. It is a no-op when disabled.
func (r *Reconciler) Start(ctx context.Context) {
	if !r.Enabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.StalePendingOrders(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		if !r.claim(order.Reference) {
			continue
		}
		select {
		case <-ctx.Done():
			r.release(order.Reference)
			return
		case r.jobs <- order.Reference:
		}
	}
}

// claim marks reference as queued; a reference already queued or running is skipped.
func (r *Reconciler) claim(reference string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inflight[reference]; ok {
		return false
	}
	r.inflight[reference] = struct{}{}
	return true
}

func (r *Reconciler) release(reference string) {
	r.mu.Lock()
	delete(r.inflight, reference)
	r.mu.Unlock()
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case reference := <-r.jobs:
			r.handle(ctx, reference)
		}
	}
}

func (r *Reconciler) handle(ctx context.Context, reference string) {
	defer r.release(reference)
	if err := r.facade.ReconcileOrder(ctx, reference); err != nil {
		r.logger.Error("reconcile order failed", slog.String("order", reference), slog.String("error", err.Error()))
	}
}
