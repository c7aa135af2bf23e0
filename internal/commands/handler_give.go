package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

func (h *Handler) give(ctx context.Context, cmdCtx *CommandContext) error {
	if len(cmdCtx.Args) == 0 {
		return NewUserError(`Specify an item from your inventory to give, followed by "to" and the name of the recipient.`)
	}
	direct, recipient, ok := cmdCtx.Indirect()
	if !ok || recipient == "" {
		return NewUserError("You must specify a recipient.")
	}
	item := stripArticle(direct)
	if strings.EqualFold(recipient, cmdCtx.Actor.Name()) {
		return NewUserError("You can't give something to yourself.")
	}

	gift, err := h.world.Give(cmdCtx.Actor, item, recipient)
	switch {
	case errors.Is(err, game.ErrNoSuchItem):
		return NewUserError(fmt.Sprintf(`You do not have an item known as "%s".`, item))
	case errors.Is(err, game.ErrNoSuchPlayer):
		return NewUserError(fmt.Sprintf(`There is no such player "%s" in this room.`, recipient))
	case errors.Is(err, game.ErrDuplicateItem):
		return NewUserError(fmt.Sprintf(`%s already has something called "%s".`, recipient, item))
	case err != nil:
		return err
	}

	h.pub.Narrate(gift.Audience, h.narrator.Narrate(narrator.Give, narrator.Facts{
		Actor:  cmdCtx.Actor.Name(),
		Item:   gift.Item,
		Target: gift.Recipient,
	}))
	return nil
}
