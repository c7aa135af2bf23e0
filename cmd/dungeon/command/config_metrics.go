package command

import (
	"github.com/pixil98/go-dungeon/internal/metrics"
)

// MetricsConfig enables the /metrics endpoint. A zero port disables it.
type MetricsConfig struct {
	Port uint16 `json:"port"`
}

func (c *MetricsConfig) validate() error {
	return nil
}

func (c *MetricsConfig) enabled() bool {
	return c.Port != 0
}

func (c *MetricsConfig) buildServer(r *metrics.Recorder) *metrics.Server {
	return metrics.NewServer(c.Port, r.Registry())
}
