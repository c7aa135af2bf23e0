package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig selects the default slog handler. Without a path, text logs go to
// stderr; with one, JSON logs go to a rotating file.
type LogConfig struct {
	Level      string `json:"level"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
}

func (c *LogConfig) validate() error {
	el := errors.NewErrorList()

	if _, err := c.level(); err != nil {
		el.Add(err)
	}
	if c.MaxSizeMB < 0 {
		el.Add(fmt.Errorf("log: max_size_mb must not be negative"))
	}
	if c.MaxBackups < 0 {
		el.Add(fmt.Errorf("log: max_backups must not be negative"))
	}

	return el.Err()
}

func (c *LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return lvl, fmt.Errorf("log: parsing level: %w", err)
	}
	return lvl, nil
}

func (c *LogConfig) buildLogger() (*slog.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if c.Path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	}

	w := &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
