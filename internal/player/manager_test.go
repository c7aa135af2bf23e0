package player

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-dungeon/internal/commands"
	"github.com/pixil98/go-dungeon/internal/dispatch"
	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

type harness struct {
	world   *game.Universe
	manager *SessionManager
	cancel  context.CancelFunc
	done    chan error
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	lobby := game.NewRoom("lobby", "lobby", "A dusty lobby.")
	world := game.NewUniverse(lobby, map[string]*game.Space{"lobby": lobby})
	n, err := narrator.NewTemplateNarrator(nil, narrator.WithPicker(func(int) int { return 0 }))
	if err != nil {
		t.Fatalf("building narrator: %v", err)
	}
	queue := dispatch.NewQueue(world)
	handler := commands.NewHandler(world, queue, n)

	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{
		world:   world,
		manager: NewSessionManager(world, handler, queue, n),
		cancel:  cancel,
		done:    make(chan error, 1),
	}
	go func() { h.done <- queue.Start(ctx) }()
	t.Cleanup(func() {
		h.cancel()
		<-h.done
	})
	return h
}

// connect starts a session on one end of a pipe and returns the other end.
func (h *harness) connect(t *testing.T) (net.Conn, *bufio.Reader, chan error) {
	t.Helper()
	server, client := net.Pipe()
	if err := client.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("setting deadline: %v", err)
	}

	result := make(chan error, 1)
	go func() {
		result <- h.manager.RunSession(context.Background(), server)
		server.Close()
	}()
	t.Cleanup(func() { client.Close() })
	return client, bufio.NewReader(client), result
}

// bystander is a player output that can be read while the queue writes to it.
type bystander struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *bystander) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *bystander) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls until b has heard line.
func (b *bystander) waitFor(t *testing.T, line string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(b.String(), line+"\n") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("never heard %q, got:\n%s", line, b.String())
}

func send(t *testing.T, w io.Writer, line string) {
	t.Helper()
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		t.Fatalf("sending %q: %v", line, err)
	}
}

func receive(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("receiving: %v", err)
	}
	return strings.TrimRight(line, "\n")
}

func TestSessionManager_Handshake(t *testing.T) {
	h := newHarness(t)
	bo := &bystander{}
	if _, _, err := h.world.Register("Bo", bo); err != nil {
		t.Fatalf("registering Bo: %v", err)
	}
	client, r, result := h.connect(t)

	send(t, client, "Ann")

	got := []string{receive(t, r), receive(t, r), receive(t, r), receive(t, r), receive(t, r)}
	testutil.AssertEqual(t, "greeting", strings.Join(got, "|"),
		"*** Ann connected.|Connected.|>>> THE LOBBY|>>> A dusty lobby.|>>> Players Ann (you) and Bo are here.")
	testutil.AssertEqual(t, "registered", h.world.PlayerCount(), 2)
	bo.waitFor(t, "Ann materializes out of thin air.")

	send(t, client, "quit")
	testutil.AssertEqual(t, "prompt", receive(t, r),
		`>>> Are you sure you want to quit? Send "quit" again to confirm.`)
	send(t, client, "quit")

	err := <-result
	testutil.AssertEqual(t, "session error", err == nil, true)
	testutil.AssertEqual(t, "retired", h.world.PlayerCount(), 1)

	bo.waitFor(t, "*** Ann disconnected.")
	heard := bo.String()
	testutil.AssertEqual(t, "bo heard", heard,
		"*** Ann connected.\nAnn materializes out of thin air.\nAnn fades away into nothing.\n*** Ann disconnected.\n")
}

func TestSessionManager_Rejects(t *testing.T) {
	tests := map[string]struct {
		name   string
		expMsg string
		expErr error
	}{
		"taken name": {
			name:   "ann",
			expMsg: `The name "ann" is already in use.`,
			expErr: game.ErrPlayerExists,
		},
		"invalid name": {
			name:   "9lives",
			expMsg: "Names start with a letter and use only letters, digits, '-' and '_', at most 24 characters.",
			expErr: game.ErrInvalidName,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			if _, _, err := h.world.Register("Ann", io.Discard); err != nil {
				t.Fatalf("registering Ann: %v", err)
			}
			client, r, result := h.connect(t)

			send(t, client, tt.name)

			testutil.AssertEqual(t, "message", receive(t, r), tt.expMsg)
			testutil.AssertEqual(t, "error", errors.Is(<-result, tt.expErr), true)
			testutil.AssertEqual(t, "player count", h.world.PlayerCount(), 1)
		})
	}
}

func TestSessionManager_PeerCloses(t *testing.T) {
	h := newHarness(t)
	bo := &bystander{}
	if _, _, err := h.world.Register("Bo", bo); err != nil {
		t.Fatalf("registering Bo: %v", err)
	}
	client, r, result := h.connect(t)

	send(t, client, "Ann")
	for range 5 {
		receive(t, r)
	}
	client.Close()

	testutil.AssertEqual(t, "session error", <-result == nil, true)
	testutil.AssertEqual(t, "retired", h.world.PlayerCount(), 1)

	bo.waitFor(t, "*** Ann disconnected.")
	testutil.AssertEqual(t, "departure narrated", strings.Contains(bo.String(), "Ann fades away into nothing.\n*** Ann disconnected.\n"), true)
}
