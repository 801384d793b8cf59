package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/undangan/internal/domain/model"
	testhelpers "github.com/polkiloo/undangan/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewReconcilerDefaults(t *testing.T) {
	rec := NewReconciler(&testhelpers.ReconcileFacadeStub{}, time.Second, 0, 0, testLogger())
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
}

func TestReconcilerReconcilesStaleOrders(t *testing.T) {
	facade := &testhelpers.ReconcileFacadeStub{Batches: [][]model.Order{
		{{Reference: "INV-1"}, {Reference: "INV-2"}},
		{{Reference: "INV-3"}},
	}}
	rec := NewReconciler(facade, 5*time.Millisecond, 2, 2, testLogger())

	rec.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.ReconciledRefs()) == 3 })
	rec.Stop()

	seen := map[string]bool{}
	for _, ref := range facade.ReconciledRefs() {
		seen[ref] = true
	}
	for _, ref := range []string{"INV-1", "INV-2", "INV-3"} {
		if !seen[ref] {
			t.Fatalf("expected %s to be reconciled", ref)
		}
	}
}

func TestReconcilerContinuesAfterErrors(t *testing.T) {
	var fetches int32
	facade := &testhelpers.ReconcileFacadeStub{
		StaleFn: func(context.Context, int) ([]model.Order, error) {
			if atomic.AddInt32(&fetches, 1) == 1 {
				return nil, errors.New("db down")
			}
			return []model.Order{{Reference: "INV-1"}}, nil
		},
		ReconcileFn: func(context.Context, string) error {
			return errors.New("gateway timeout")
		},
	}
	rec := NewReconciler(facade, 5*time.Millisecond, 1, 1, testLogger())

	rec.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.ReconciledRefs()) >= 2 })
	rec.Stop()
}

func TestReconcilerSkipsInflightOrders(t *testing.T) {
	release := make(chan struct{})
	var running int32
	facade := &testhelpers.ReconcileFacadeStub{
		StaleFn: func(context.Context, int) ([]model.Order, error) {
			return []model.Order{{Reference: "INV-slow"}}, nil
		},
		ReconcileFn: func(ctx context.Context, _ string) error {
			atomic.AddInt32(&running, 1)
			select {
			case <-release:
			case <-ctx.Done():
			}
			return nil
		},
	}
	rec := NewReconciler(facade, 2*time.Millisecond, 4, 4, testLogger())

	rec.Start(context.Background())
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&running) == 1 })
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt32(&running); got != 1 {
		t.Fatalf("expected a single in-flight reconciliation, got %d", got)
	}
	close(release)
	rec.Stop()
}

func TestReconcilerDisabled(t *testing.T) {
	facade := &testhelpers.ReconcileFacadeStub{Batches: [][]model.Order{{{Reference: "INV-1"}}}}
	rec := NewReconciler(facade, 0, 1, 1, testLogger())
	if rec.Enabled() {
		t.Fatal("zero interval must disable the reconciler")
	}

	rec.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	rec.Stop()

	if len(facade.ReconciledRefs()) != 0 {
		t.Fatal("disabled reconciler must not run")
	}
}
