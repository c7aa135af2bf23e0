package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/go-dungeon/internal/display"
	"github.com/pixil98/go-dungeon/internal/game"
)

func (h *Handler) look(ctx context.Context, cmdCtx *CommandContext) error {
	target := cmdCtx.Object()

	sight, err := h.world.Look(cmdCtx.Actor, target)
	switch {
	case errors.Is(err, game.ErrNoSuchItem):
		return NewUserError(fmt.Sprintf(`There's no such item by the name "%s" in the room or your inventory.`, target))
	case err != nil:
		return err
	}

	if sight.Room != nil {
		h.pub.Notify(cmdCtx.Output, strings.Join(display.Room(*sight.Room, cmdCtx.Actor.Name()), "\n"))
		return nil
	}

	desc := sight.Item.Description
	if sight.Item.FromInventory {
		desc = "(from your inventory) " + desc
	}
	h.pub.Notify(cmdCtx.Output, desc)
	return nil
}

func (h *Handler) inventory(ctx context.Context, cmdCtx *CommandContext) error {
	h.pub.Notify(cmdCtx.Output, display.Inventory(h.world.Inventory(cmdCtx.Actor)))
	return nil
}

func (h *Handler) exits(ctx context.Context, cmdCtx *CommandContext) error {
	h.pub.Notify(cmdCtx.Output, display.Exits(h.world.Exits(cmdCtx.Actor)))
	return nil
}
