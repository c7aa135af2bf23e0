package commands

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/rodaine/table"

	"github.com/pixil98/go-dungeon/internal/display"
)

func (h *Handler) who(ctx context.Context, cmdCtx *CommandContext) error {
	present := h.world.Who()

	var buf bytes.Buffer
	tbl := table.New("PLAYER", "LAST HEARD FROM").WithWriter(&buf)
	for _, p := range present {
		name := p.Name
		if strings.EqualFold(p.Name, cmdCtx.Actor.Name()) {
			name += " (you)"
		}
		tbl.AddRow(name, lastHeard(p.Idle))
	}
	tbl.Print()

	text := strings.TrimRight(buf.String(), "\n") + "\n" + display.Count("player", len(present)) + " connected."
	h.pub.Notify(cmdCtx.Output, text)
	return nil
}

// lastHeard renders how long ago a player last did something.
func lastHeard(d time.Duration) string {
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return display.Count("second", int(d/time.Second)) + " ago"
	case d < time.Hour:
		return display.Count("minute", int(d/time.Minute)) + " ago"
	default:
		return display.Count("hour", int(d/time.Hour)) + " ago"
	}
}
