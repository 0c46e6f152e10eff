package viewer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FetchFailedMessage is the only error text a user ever sees, whatever the
// underlying cause.
const FetchFailedMessage = "Failed to fetch products. Is the backend running on port 5000?"

type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher is the one call a viewer makes per mount.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

type Snapshot struct {
	Status   Status
	Products []Product
	Err      string
}

// Viewer requests the catalog once per mount and holds the outcome. Loading
// moves to Loaded or Failed exactly once; both are terminal.
type Viewer struct {
	catalog Fetcher
	log     *zap.Logger
	metrics *FetchMetrics

	mu        sync.RWMutex
	snap      Snapshot
	mounted   bool
	unmounted bool
	mountID   string
	cancel    context.CancelFunc
	done      chan struct{}
}

// New returns an unmounted viewer in the Loading state. log and metrics may
// be nil.
func New(catalog Fetcher, log *zap.Logger, metrics *FetchMetrics) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{
		catalog: catalog,
		log:     log,
		metrics: metrics,
		snap:    Snapshot{Status: StatusLoading},
		done:    make(chan struct{}),
	}
}

// Mount starts the single catalog request. The request lives until it
// settles, ctx is done, or Unmount is called. Mounting twice, or after
// Unmount, does nothing.
func (v *Viewer) Mount(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mounted || v.unmounted {
		return
	}
	v.mounted = true
	v.mountID = uuid.NewString()

	ctx, v.cancel = context.WithCancel(ctx)
	go v.fetch(ctx, v.mountID)
}

// Unmount cancels an in-flight request. Its result, if it still arrives, is
// dropped and the state stays as it was.
func (v *Viewer) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.unmounted {
		return
	}
	v.unmounted = true

	if !v.mounted {
		close(v.done)
		return
	}
	v.cancel()
}

func (v *Viewer) fetch(ctx context.Context, mountID string) {
	defer close(v.done)

	log := v.log.With(zap.String("mount_id", mountID))
	start := time.Now()

	products, err := v.catalog.ListProducts(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if ctx.Err() != nil {
		log.Debug("catalog result discarded", zap.Error(context.Cause(ctx)))
		v.metrics.observe(outcomeDiscarded, time.Since(start))
		return
	}

	if err != nil {
		log.Error("error fetching products", zap.Error(err))
		v.snap = Snapshot{Status: StatusFailed, Err: FetchFailedMessage}
		v.metrics.observe(outcomeFailed, time.Since(start))
		return
	}

	log.Info("products loaded", zap.Int("count", len(products)))
	v.snap = Snapshot{Status: StatusLoaded, Products: products}
	v.metrics.observe(outcomeLoaded, time.Since(start))
}

// Snapshot returns a copy of the current state.
func (v *Viewer) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := v.snap
	if s.Products != nil {
		s.Products = append([]Product(nil), s.Products...)
	}
	return s
}

var ErrNotMounted = errors.New("viewer not mounted")

// Wait blocks until the fetch has settled or been discarded. It fails fast
// with ErrNotMounted when there is nothing to wait for.
func (v *Viewer) Wait(ctx context.Context) error {
	v.mu.RLock()
	idle := !v.mounted && !v.unmounted
	v.mu.RUnlock()
	if idle {
		return ErrNotMounted
	}

	select {
	case <-v.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
