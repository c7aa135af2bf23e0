package dispatch

import (
	"io"

	"github.com/pixil98/go-dungeon/internal/display"
)

// Kind classifies an outbound line and decides its prefix.
type Kind int

const (
	// Narration describes an action to everyone watching. It carries no prefix.
	Narration Kind = iota
	// Notification is private text for its addressee.
	Notification
	// ServerNotice goes to every connected player.
	ServerNotice
	// ServerError goes to every connected player and is reserved for
	// startup, shutdown and fatal conditions.
	ServerError
)

func (k Kind) String() string {
	switch k {
	case Narration:
		return "narration"
	case Notification:
		return "notification"
	case ServerNotice:
		return "notice"
	case ServerError:
		return "error"
	default:
		return "unknown"
	}
}

// Prefix returns the reserved line prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case Notification:
		return ">>> "
	case ServerNotice:
		return "*** "
	case ServerError:
		return "!!! "
	default:
		return ""
	}
}

// Event is one formatted message and the outputs it goes to.
type Event struct {
	Kind    Kind
	Targets []io.Writer
	Text    string
}

// Render wraps the text and prefixes every resulting line. The result ends
// with a newline.
func (e Event) Render() string {
	return display.Prefix(e.Text, e.Kind.Prefix()) + "\n"
}
