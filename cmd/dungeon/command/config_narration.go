package command

import (
	"fmt"

	"github.com/pixil98/go-dungeon/internal/narrator"
)

// NarrationConfig replaces the phrasings of narration events. Each event maps
// to one or more templates; one is picked at random each time.
type NarrationConfig struct {
	Templates map[string][]string `json:"templates"`
}

func (c *NarrationConfig) validate() error {
	if _, err := c.buildNarrator(); err != nil {
		return fmt.Errorf("narration: %w", err)
	}
	return nil
}

func (c *NarrationConfig) buildNarrator() (*narrator.TemplateNarrator, error) {
	return narrator.NewTemplateNarrator(c.Templates)
}
