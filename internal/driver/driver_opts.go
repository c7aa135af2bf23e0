package driver

import "time"

type DriverOpt func(*Driver)

// WithTickLength overrides the real time between ticks.
func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}

// WithObserver reports completed ticks to o.
func WithObserver(o TickObserver) DriverOpt {
	return func(d *Driver) {
		d.observer = o
	}
}
