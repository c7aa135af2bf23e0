package commands

import (
	"context"
	"errors"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

func (h *Handler) lock(ctx context.Context, cmdCtx *CommandContext) error {
	if len(cmdCtx.Args) == 0 {
		return NewUserError("Specify the direction of the door to lock.")
	}
	change, err := h.world.LockDoor(cmdCtx.Actor, cmdCtx.Args[0])
	if err != nil {
		return doorError(cmdCtx.Args[0], err)
	}
	h.pub.Narrate(change.Audience, h.narrator.Narrate(narrator.Lock, narrator.Facts{
		Actor:     cmdCtx.Actor.Name(),
		Door:      change.Door,
		Direction: change.Direction.String(),
	}))
	return nil
}

func (h *Handler) unlock(ctx context.Context, cmdCtx *CommandContext) error {
	if len(cmdCtx.Args) == 0 {
		return NewUserError("Specify the direction of the door to unlock.")
	}
	change, err := h.world.UnlockDoor(cmdCtx.Actor, cmdCtx.Args[0])
	if err != nil {
		return doorError(cmdCtx.Args[0], err)
	}
	h.pub.Narrate(change.Audience, h.narrator.Narrate(narrator.Unlock, narrator.Facts{
		Actor:     cmdCtx.Actor.Name(),
		Door:      change.Door,
		Direction: change.Direction.String(),
	}))
	return nil
}

func doorError(token string, err error) error {
	switch {
	case errors.Is(err, game.ErrNotADoor):
		return NewUserError("There is no door that way.")
	case errors.Is(err, game.ErrNoKey):
		return NewUserError("You don't have a key.")
	case errors.Is(err, game.ErrWrongKey):
		return NewUserError("Your key doesn't fit this door.")
	case errors.Is(err, game.ErrAlreadyLocked):
		return NewUserError("The door is already locked.")
	case errors.Is(err, game.ErrNotLocked):
		return NewUserError("The door isn't locked.")
	default:
		return moveError(token, err)
	}
}
