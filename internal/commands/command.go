package commands

import (
	"io"
	"strings"

	"github.com/pixil98/go-dungeon/internal/game"
)

// Command is one entry of the closed action table.
type Command struct {
	Name     string
	Synonyms []string
	Usage    string
	run      CommandFunc
}

// Matches reports whether token names the command, ignoring case.
func (c *Command) Matches(token string) bool {
	if strings.EqualFold(token, c.Name) {
		return true
	}
	for _, s := range c.Synonyms {
		if strings.EqualFold(token, s) {
			return true
		}
	}
	return false
}

// CommandContext carries the actor and the parsed input to a command.
type CommandContext struct {
	Actor *game.Player
	// Output is the actor's output at the time the command started.
	Output io.Writer
	// Args are the whitespace separated tokens after the action.
	Args []string
}

// Rest joins the arguments with single spaces.
func (c *CommandContext) Rest() string {
	return strings.Join(c.Args, " ")
}

// Object is the argument phrase with a leading "the" removed, as used to name
// items.
func (c *CommandContext) Object() string {
	return stripArticle(c.Rest())
}

// Indirect splits the argument phrase at its last " to " into the direct and
// indirect object. ok is false when there is no " to ".
func (c *CommandContext) Indirect() (direct, indirect string, ok bool) {
	rest := c.Rest()
	i := strings.LastIndex(rest, " to ")
	if i < 0 {
		return rest, "", false
	}
	return rest[:i], strings.TrimSpace(rest[i+len(" to "):]), true
}

func stripArticle(s string) string {
	if len(s) > 4 && strings.EqualFold(s[:4], "the ") {
		return strings.TrimSpace(s[4:])
	}
	return s
}

// stripQuotes removes one pair of matching surrounding quotation marks.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && first == last {
		return s[1 : len(s)-1]
	}
	return s
}
