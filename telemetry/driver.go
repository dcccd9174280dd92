package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/flightdeck/snapshot"
)

// DriverConfig configures the background driver.
type DriverConfig struct {
	// Name groups the driver's tree in snapshots.
	// Default: "" (no grouping)
	Name string

	// Interval is the time between processing ticks.
	// Default: 100 milliseconds
	Interval time.Duration

	// MaxBatch bounds the messages each processor drains per tick.
	// Default: 1000
	MaxBatch int

	// Strategy is the drop policy applied on each tick.
	// Default: DropOlderThan(60s)
	Strategy ProcessingStrategy

	// InactivityLimit marks the whole tree inactive in snapshots after this
	// much time without processed or dropped messages.
	// Default: 0 (no inactivity tracking)
	InactivityLimit time.Duration

	// Logger receives driver lifecycle messages.
	// Default: a noop logger
	Logger Logger
}

func (c *DriverConfig) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = 100 * time.Millisecond
	}
	if c.MaxBatch <= 0 {
		c.MaxBatch = 1000
	}
	if c.Strategy == (ProcessingStrategy{}) {
		c.Strategy = DefaultStrategy()
	}
	if c.Logger == nil {
		c.Logger = NopLogger()
	}
}

// driverRequest is work executed on the driver goroutine, which is the sole
// owner of the mount tree.
type driverRequest struct {
	run  func(mount *ProcessorMount)
	done chan struct{}
}

// Driver owns a ProcessorMount and drains it on an interval from a single
// background goroutine. Structural changes and snapshot rendering are
// funneled through that goroutine so the tree stays single-writer; callers
// never touch it directly.
type Driver struct {
	cfg      DriverConfig
	ctx      context.Context
	cancel   context.CancelFunc
	group    *errgroup.Group
	requests chan driverRequest
	flight   singleflight.Group
	closed   atomic.Bool
}

// NewDriver creates a driver and starts its processing loop.
func NewDriver(cfg DriverConfig) *Driver {
	cfg.applyDefaults()

	mount := NewProcessorMount(cfg.Name)
	if cfg.InactivityLimit > 0 {
		mount.SetInactivityLimit(cfg.InactivityLimit)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	d := &Driver{
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		requests: make(chan driverRequest),
	}
	d.group = group
	group.Go(func() error {
		return d.run(ctx, mount)
	})
	return d
}

func (d *Driver) run(ctx context.Context, mount *ProcessorMount) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			outcome := mount.Process(d.cfg.MaxBatch, d.cfg.Strategy)
			if outcome.Dropped > 0 {
				d.cfg.Logger.Debug(ctx, "observations dropped by strategy",
					Field{Key: "dropped", Value: outcome.Dropped},
					Field{Key: "processed", Value: outcome.Processed})
			}
		case req := <-d.requests:
			req.run(mount)
			close(req.done)
		}
	}
}

// submit runs fn on the driver goroutine and waits for it to finish.
func (d *Driver) submit(ctx context.Context, fn func(mount *ProcessorMount)) error {
	if d.closed.Load() {
		return ErrDriverClosed
	}
	req := driverRequest{run: fn, done: make(chan struct{})}
	select {
	case d.requests <- req:
	case <-d.ctx.Done():
		return ErrDriverClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddProcessor adds a processor to the driven tree. It is a no-op after
// shutdown.
func (d *Driver) AddProcessor(p MessageProcessor) {
	_ = d.submit(context.Background(), func(mount *ProcessorMount) {
		mount.AddProcessor(p)
	})
}

// AddSnapshotter adds a polled snapshot contributor to the driven tree. It
// is a no-op after shutdown.
func (d *Driver) AddSnapshotter(s Snapshotter) {
	_ = d.submit(context.Background(), func(mount *ProcessorMount) {
		mount.AddSnapshotter(s)
	})
}

// Snapshot renders the driven tree. Concurrent calls with the same
// descriptive flag share one rendering.
func (d *Driver) Snapshot(ctx context.Context, descriptive bool) (*snapshot.Snapshot, error) {
	key := "snapshot"
	if descriptive {
		key = "snapshot-descriptive"
	}
	result, err, _ := d.flight.Do(key, func() (any, error) {
		snap := snapshot.New()
		if err := d.submit(ctx, func(mount *ProcessorMount) {
			mount.PutSnapshot(snap, descriptive)
		}); err != nil {
			return nil, err
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*snapshot.Snapshot), nil
}

// Shutdown stops the processing loop and waits for it to exit or for the
// context to end. Shutdown is idempotent.
func (d *Driver) Shutdown(ctx context.Context) error {
	if d.closed.Swap(true) {
		return nil
	}
	d.cancel()

	done := make(chan struct{})
	go func() {
		_ = d.group.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Aggregator = (*Driver)(nil)
