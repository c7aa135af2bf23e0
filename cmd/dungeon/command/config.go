package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	World        WorldConfig      `json:"world"`
	TickInterval string           `json:"tick_interval,omitempty"`
	Listeners    []ListenerConfig `json:"listeners"`
	Nats         NatsConfig       `json:"nats"`
	Metrics      MetricsConfig    `json:"metrics"`
	Log          LogConfig        `json:"log"`
	Narration    NarrationConfig  `json:"narration"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.World.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Metrics.validate())
	el.Add(c.Log.validate())
	el.Add(c.Narration.validate())

	return el.Err()
}

// tickLength is the configured override, or zero to derive it from the
// world's timescale.
func (c *Config) tickLength() time.Duration {
	if c.TickInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}
