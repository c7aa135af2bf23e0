package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

// CommandFunc is the signature of a compiled command.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// Publisher queues outbound lines.
type Publisher interface {
	Narrate(targets []io.Writer, text string)
	Notify(target io.Writer, text string)
}

// Observer is told the outcome of every command.
type Observer interface {
	ObserveCommand(action, outcome string)
}

// Handler parses player input, applies it to the world and decides who hears
// about it. It holds no per-player state of its own.
type Handler struct {
	world    *game.Universe
	pub      Publisher
	narrator narrator.Narrator
	observer Observer
	commands []*Command
}

// HandlerOpt configures a Handler.
type HandlerOpt func(*Handler)

// WithObserver reports command outcomes to o.
func WithObserver(o Observer) HandlerOpt {
	return func(h *Handler) {
		h.observer = o
	}
}

func NewHandler(world *game.Universe, pub Publisher, n narrator.Narrator, opts ...HandlerOpt) *Handler {
	h := &Handler{
		world:    world,
		pub:      pub,
		narrator: n,
	}
	for _, opt := range opts {
		opt(h)
	}

	// Table order breaks ties between synonyms. Single compass letters are
	// left free so that "n", "e", "s" and "w" always walk.
	h.commands = []*Command{
		{Name: "move", Synonyms: []string{"m", "go", "walk"}, Usage: "<direction>", run: h.move},
		{Name: "take", Synonyms: []string{"t", "get"}, Usage: "<item>", run: h.take},
		{Name: "drop", Usage: "<item>", run: h.drop},
		{Name: "give", Usage: "<item> to <player>", run: h.give},
		{Name: "look", Synonyms: []string{"l"}, Usage: "[<item>|here]", run: h.look},
		{Name: "inventory", Synonyms: []string{"i", "inv"}, run: h.inventory},
		{Name: "exits", Synonyms: []string{"ex"}, run: h.exits},
		{Name: "say", Synonyms: []string{"'"}, Usage: "[<message>]", run: h.say},
		{Name: "yell", Synonyms: []string{"y", "shout"}, Usage: "<message>", run: h.yell},
		{Name: "whisper", Synonyms: []string{"wh"}, Usage: "<message> to <player>", run: h.whisper},
		{Name: "use", Synonyms: []string{"u"}, Usage: "<item>", run: h.use},
		{Name: "lock", Usage: "<direction>", run: h.lock},
		{Name: "unlock", Usage: "<direction>", run: h.unlock},
		{Name: "who", run: h.who},
		{Name: "help", Synonyms: []string{"h", "?"}, run: h.help},
		{Name: "quit", run: h.quit},
	}
	return h
}

// Commands returns the action table in match order.
func (h *Handler) Commands() []*Command {
	return h.commands
}

// Exec runs one line of player input. Mistakes are reported to the player and
// swallowed; the returned error is either ErrQuit or a system failure.
func (h *Handler) Exec(ctx context.Context, actor *game.Player, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	h.world.Touch(actor)
	out := h.world.Output(actor)

	cmd, args := h.match(tokens)
	if cmd == nil {
		h.world.ClearQuit(actor)
		h.observe("unknown", "user_error")
		h.pub.Notify(out, fmt.Sprintf(`Unsure what is meant by "%s". Try "help" to get a list of valid actions.`, tokens[0]))
		return nil
	}
	if cmd.Name != "quit" {
		h.world.ClearQuit(actor)
	}

	err := cmd.run(ctx, &CommandContext{Actor: actor, Output: out, Args: args})

	var userErr *UserError
	switch {
	case err == nil:
		h.observe(cmd.Name, "ok")
		return nil
	case errors.As(err, &userErr):
		h.observe(cmd.Name, "user_error")
		h.pub.Notify(out, userErr.Message)
		return nil
	case errors.Is(err, ErrQuit):
		h.observe(cmd.Name, "ok")
		return err
	default:
		h.observe(cmd.Name, "error")
		slog.ErrorContext(ctx, "executing command", "command", cmd.Name, "player", actor.Name(), "error", err)
		return fmt.Errorf("executing %s: %w", cmd.Name, err)
	}
}

// match finds the command named by the first token. A bare direction is
// treated as a move in that direction, and a leading ' starts speech even
// when it is attached to the first word.
func (h *Handler) match(tokens []string) (*Command, []string) {
	if first := tokens[0]; len(first) > 1 && first[0] == '\'' {
		tokens = append([]string{"'", first[1:]}, tokens[1:]...)
	}
	for _, c := range h.commands {
		if c.Matches(tokens[0]) {
			return c, tokens[1:]
		}
	}
	if _, err := game.ResolveDirection(tokens[0]); err == nil {
		return h.commands[0], tokens
	}
	return nil, nil
}

func (h *Handler) observe(action, outcome string) {
	if h.observer != nil {
		h.observer.ObserveCommand(action, outcome)
	}
}
