package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pixil98/go-dungeon/internal/commands"
	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

// Dispatcher runs one line of player input.
type Dispatcher interface {
	Exec(ctx context.Context, actor *game.Player, line string) error
}

// Publisher queues outbound lines, including server-wide notices.
type Publisher interface {
	commands.Publisher
	Announce(text string)
}

// SessionManager runs one session per accepted connection against a shared
// world.
type SessionManager struct {
	world    *game.Universe
	dispatch Dispatcher
	pub      Publisher
	narrator narrator.Narrator
}

func NewSessionManager(world *game.Universe, d Dispatcher, pub Publisher, n narrator.Narrator) *SessionManager {
	return &SessionManager{
		world:    world,
		dispatch: d,
		pub:      pub,
		narrator: n,
	}
}

// RunSession performs the name handshake on conn and then forwards every line
// to the dispatcher until the peer goes away, the player quits or ctx ends.
// The player is retired on every exit path.
func (m *SessionManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	sessionId := uuid.NewString()
	lines := newLineReader(conn)
	defer lines.stop()

	name, ok := lines.next(ctx)
	if !ok {
		return lines.err()
	}
	name = strings.TrimSpace(name)

	p, audience, err := m.world.Register(name, conn)
	if err != nil {
		if _, werr := io.WriteString(conn, rejection(name, err)+"\n"); werr != nil {
			slog.WarnContext(ctx, "writing rejection", "session", sessionId, "error", werr)
		}
		return fmt.Errorf("registering %q: %w", name, err)
	}
	slog.InfoContext(ctx, "player connected", "session", sessionId, "player", p.Name())

	s := &session{
		id:      sessionId,
		player:  p,
		manager: m,
		lines:   lines,
	}
	defer s.end(ctx)

	m.pub.Announce(fmt.Sprintf("%s connected.", p.Name()))
	m.pub.Narrate([]io.Writer{conn}, "Connected.")
	m.pub.Narrate(audience, m.narrator.Narrate(narrator.Materialize, narrator.Facts{Actor: p.Name()}))

	return s.play(ctx)
}

func rejection(name string, err error) string {
	switch {
	case errors.Is(err, game.ErrPlayerExists):
		return fmt.Sprintf(`The name "%s" is already in use.`, name)
	case errors.Is(err, game.ErrInvalidName):
		return fmt.Sprintf("Names start with a letter and use only letters, digits, '-' and '_', at most %d characters.", game.MaxNameLength)
	default:
		return "Unable to join right now."
	}
}

// lineReader feeds lines from a blocking reader into a channel so the session
// can also watch its context.
type lineReader struct {
	lines chan string
	done  chan struct{}
	errCh chan error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
		errCh: make(chan error, 1),
	}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lr.lines <- scanner.Text():
			case <-lr.done:
				return
			}
		}
		lr.errCh <- scanner.Err()
	}()
	return lr
}

// next returns the next line. ok is false at end of stream, on a read error
// or when ctx is done.
func (lr *lineReader) next(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lr.lines:
		return line, ok
	}
}

// err reports the read error that ended the stream, if any.
func (lr *lineReader) err() error {
	select {
	case err := <-lr.errCh:
		return err
	default:
		return nil
	}
}

func (lr *lineReader) stop() {
	close(lr.done)
}
