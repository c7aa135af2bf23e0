package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Ticker is advanced once per tick.
type Ticker interface {
	Tick(context.Context) error
}

// TickObserver is told about every completed tick.
type TickObserver interface {
	ObserveTick()
}

// Driver advances simulated time at a fixed real-time rate.
type Driver struct {
	tickLength time.Duration
	tickers    []Ticker
	observer   TickObserver
}

// TickLength is the real time between ticks for a world running timescale
// simulated seconds per real second.
func TickLength(timescale int) time.Duration {
	if timescale < 1 {
		timescale = 1
	}
	return time.Second / time.Duration(timescale)
}

func NewDriver(tickers []Ticker, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: time.Second,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "simulation clock started", "tick_length", d.tickLength)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick advances every ticker once, stopping at the first failure.
func (d *Driver) Tick(ctx context.Context) error {
	for i, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return fmt.Errorf("ticker %d: %w", i, err)
		}
	}
	if d.observer != nil {
		d.observer.ObserveTick()
	}
	return nil
}
