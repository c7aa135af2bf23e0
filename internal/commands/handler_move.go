package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/go-dungeon/internal/display"
	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

func (h *Handler) move(ctx context.Context, cmdCtx *CommandContext) error {
	if len(cmdCtx.Args) == 0 {
		return NewUserError("Specify a direction in which to move.")
	}
	token := cmdCtx.Args[0]

	mv, err := h.world.MovePlayer(cmdCtx.Actor, token)
	if err != nil {
		return moveError(token, err)
	}

	facts := narrator.Facts{
		Actor:     cmdCtx.Actor.Name(),
		Direction: mv.Direction.String(),
		Door:      mv.Door,
	}
	if mv.UsedKey {
		h.pub.Notify(cmdCtx.Output, "Your key unlocks the door. You lock it behind you.")
	}
	h.pub.Narrate(mv.Departures, h.narrator.Narrate(narrator.Depart, facts))
	h.pub.Narrate(mv.Arrivals, h.narrator.Narrate(narrator.Arrive, facts))
	h.pub.Notify(cmdCtx.Output, strings.Join(display.Room(mv.View, cmdCtx.Actor.Name()), "\n"))
	return nil
}

// moveError turns world errors about directions and exits into messages.
func moveError(token string, err error) error {
	switch {
	case errors.Is(err, game.ErrNoSuchDirection):
		names := make([]string, 0, 10)
		for _, d := range game.Directions() {
			names = append(names, d.String())
		}
		return NewUserError(fmt.Sprintf(`Unsure which direction is meant by "%s". The following directions are recognized: %s.`, token, display.List(names)))
	case errors.Is(err, game.ErrNoSuchExit):
		return NewUserError(`That's not an exit. Try "exits" for a list of ways out.`)
	case errors.Is(err, game.ErrLockedDoor):
		return NewUserError("The door is locked, and you don't have the key.")
	default:
		return err
	}
}
