package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

func (h *Handler) say(ctx context.Context, cmdCtx *CommandContext) error {
	text := stripQuotes(cmdCtx.Rest())
	facts := narrator.Facts{Actor: cmdCtx.Actor.Name(), Text: text}

	audience := h.world.Say(cmdCtx.Actor)
	if text == "" {
		h.pub.Narrate(audience, h.narrator.Narrate(narrator.SayNothing, facts))
		return nil
	}
	h.pub.Narrate(audience, h.narrator.Narrate(narrator.Say, facts))
	return nil
}

func (h *Handler) yell(ctx context.Context, cmdCtx *CommandContext) error {
	text := stripQuotes(cmdCtx.Rest())
	if text == "" {
		return NewUserError("Supply something to yell.")
	}
	facts := narrator.Facts{Actor: cmdCtx.Actor.Name(), Text: text}

	near, far := h.world.Yell(cmdCtx.Actor)
	h.pub.Narrate(near, h.narrator.Narrate(narrator.Yell, facts))
	h.pub.Narrate(far, h.narrator.Narrate(narrator.DistantYell, facts))
	return nil
}

func (h *Handler) whisper(ctx context.Context, cmdCtx *CommandContext) error {
	if len(cmdCtx.Args) == 0 {
		return NewUserError(`Write a secret message, followed by "to" and the name of the recipient.`)
	}
	message, recipient, ok := cmdCtx.Indirect()
	if !ok || recipient == "" {
		return NewUserError("You didn't specify a recipient, so you whispered to yourself.")
	}
	if strings.EqualFold(recipient, cmdCtx.Actor.Name()) {
		h.pub.Narrate([]io.Writer{cmdCtx.Output}, "OK, you murmur something completely inaudible.")
		return nil
	}

	w, err := h.world.Whisper(cmdCtx.Actor, recipient)
	switch {
	case errors.Is(err, game.ErrNoSuchPlayer):
		return NewUserError(fmt.Sprintf(`There is no such player "%s" in this room.`, recipient))
	case err != nil:
		return err
	}

	facts := narrator.Facts{
		Actor:  cmdCtx.Actor.Name(),
		Target: w.Recipient,
		Text:   stripQuotes(message),
	}
	h.pub.Narrate(w.Participants, h.narrator.Narrate(narrator.Whisper, facts))
	h.pub.Narrate(w.Observers, h.narrator.Narrate(narrator.UnheardWhisper, facts))
	return nil
}
