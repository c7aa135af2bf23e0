package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pixil98/go-dungeon/internal/dispatch"
)

// DefaultSubjectPrefix is where mirrored events are published. The event kind
// is appended, giving subjects such as "dungeon.events.narration".
const DefaultSubjectPrefix = "dungeon.events"

// Publisher sends raw messages.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// MirroredEvent is the payload published for each delivered event.
type MirroredEvent struct {
	Kind       string    `json:"kind"`
	Text       string    `json:"text"`
	Recipients int       `json:"recipients"`
	At         time.Time `json:"at"`
}

// EventMirror publishes a copy of every dispatched event so that tools
// outside the server can follow the game.
type EventMirror struct {
	pub    Publisher
	prefix string
	now    func() time.Time
}

func NewEventMirror(pub Publisher, prefix string) *EventMirror {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &EventMirror{
		pub:    pub,
		prefix: prefix,
		now:    time.Now,
	}
}

// Mirror publishes e. Events delivered before the server is ready are
// dropped silently.
func (m *EventMirror) Mirror(e dispatch.Event) error {
	data, err := json.Marshal(MirroredEvent{
		Kind:       e.Kind.String(),
		Text:       e.Text,
		Recipients: len(e.Targets),
		At:         m.now(),
	})
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	err = m.pub.Publish(m.Subject(e.Kind), data)
	if errors.Is(err, ErrNotStarted) {
		return nil
	}
	return err
}

// Subject returns the subject events of kind k are published on.
func (m *EventMirror) Subject(k dispatch.Kind) string {
	return m.prefix + "." + k.String()
}
