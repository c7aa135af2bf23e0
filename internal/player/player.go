package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-dungeon/internal/commands"
	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

type session struct {
	id      string
	player  *game.Player
	manager *SessionManager
	lines   *lineReader
}

func (s *session) play(ctx context.Context) error {
	// Show the player where they are on arrival.
	if err := s.manager.dispatch.Exec(ctx, s.player, "look"); err != nil {
		return fmt.Errorf("initial look: %w", err)
	}

	for {
		line, ok := s.lines.next(ctx)
		if !ok {
			if err := s.lines.err(); err != nil {
				return fmt.Errorf("reading from %s: %w", s.player.Name(), err)
			}
			return nil
		}

		err := s.manager.dispatch.Exec(ctx, s.player, line)
		switch {
		case err == nil:
		case errors.Is(err, commands.ErrQuit):
			return nil
		default:
			return err
		}
	}
}

// end retires the player if a quit has not already done so and tells the
// server they left.
func (s *session) end(ctx context.Context) {
	m := s.manager
	name := s.player.Name()

	if audience, ok := m.world.Retire(s.player); ok {
		m.pub.Narrate(audience, m.narrator.Narrate(narrator.Dematerialize, narrator.Facts{Actor: name}))
	}
	m.pub.Announce(fmt.Sprintf("%s disconnected.", name))
	slog.InfoContext(ctx, "player disconnected", "session", s.id, "player", name)
}
