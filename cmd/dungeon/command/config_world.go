package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-dungeon/internal/storage"
)

type WorldConfig struct {
	Path string `json:"path"`
}

func (c *WorldConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("world: path is required")
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("world: invalid path %q: %w", c.Path, err)
	}
	return nil
}

func (c *WorldConfig) load() (*storage.World, error) {
	return storage.LoadWorld(c.Path)
}
