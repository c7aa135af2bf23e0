package commands

import (
	"bytes"
	"context"
	"strings"

	"github.com/rodaine/table"
)

func (h *Handler) help(ctx context.Context, cmdCtx *CommandContext) error {
	var buf bytes.Buffer
	tbl := table.New("COMMAND", "USAGE", "SYNONYMS").WithWriter(&buf)
	for _, c := range h.commands {
		tbl.AddRow(c.Name, c.Usage, strings.Join(c.Synonyms, ", "))
	}
	tbl.Print()

	text := strings.TrimRight(buf.String(), "\n") +
		"\nA direction on its own, such as \"north\" or \"n\", moves you that way."
	h.pub.Notify(cmdCtx.Output, text)
	return nil
}
