package commands

import (
	"context"

	"github.com/pixil98/go-dungeon/internal/narrator"
)

// quit needs to be sent twice in a row. The first arms it, the second retires
// the player and ends the session.
func (h *Handler) quit(ctx context.Context, cmdCtx *CommandContext) error {
	if !h.world.RequestQuit(cmdCtx.Actor) {
		h.pub.Notify(cmdCtx.Output, `Are you sure you want to quit? Send "quit" again to confirm.`)
		return nil
	}

	audience, ok := h.world.Retire(cmdCtx.Actor)
	if ok {
		h.pub.Narrate(audience, h.narrator.Narrate(narrator.Dematerialize, narrator.Facts{
			Actor: cmdCtx.Actor.Name(),
		}))
	}
	return ErrQuit
}
