package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

func (h *Handler) take(ctx context.Context, cmdCtx *CommandContext) error {
	item := cmdCtx.Object()
	if item == "" {
		return NewUserError("Specify an item to take.")
	}

	tr, err := h.world.Take(cmdCtx.Actor, item)
	switch {
	case errors.Is(err, game.ErrNoSuchItem):
		return NewUserError(fmt.Sprintf(`There is no item "%s" in the room.`, item))
	case errors.Is(err, game.ErrNotCarryable):
		return NewUserError(fmt.Sprintf("The %s cannot be picked up.", item))
	case errors.Is(err, game.ErrDuplicateItem):
		return NewUserError(fmt.Sprintf(`You are already carrying something called "%s".`, item))
	case err != nil:
		return err
	}

	h.pub.Narrate(tr.Audience, h.narrator.Narrate(narrator.Take, narrator.Facts{
		Actor: cmdCtx.Actor.Name(),
		Item:  tr.Item,
	}))
	return nil
}

// use has no effects to offer yet; every item refuses.
func (h *Handler) use(ctx context.Context, cmdCtx *CommandContext) error {
	if cmdCtx.Object() == "" {
		return NewUserError("Specify an item to use.")
	}
	return NewUserError("That cannot be used.")
}
