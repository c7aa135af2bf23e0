package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

func (h *Handler) drop(ctx context.Context, cmdCtx *CommandContext) error {
	item := cmdCtx.Object()
	if item == "" {
		return NewUserError("Specify an item to drop.")
	}

	tr, err := h.world.Drop(cmdCtx.Actor, item)
	switch {
	case errors.Is(err, game.ErrNoSuchItem):
		return NewUserError(fmt.Sprintf(`You do not have an item known as "%s".`, item))
	case errors.Is(err, game.ErrDuplicateItem):
		return NewUserError(fmt.Sprintf(`There is already something called "%s" here.`, item))
	case err != nil:
		return err
	}

	h.pub.Narrate(tr.Audience, h.narrator.Narrate(narrator.Drop, narrator.Facts{
		Actor: cmdCtx.Actor.Name(),
		Item:  tr.Item,
	}))
	return nil
}
