package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-dungeon/internal/dispatch"
)

type recordingPublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func TestEventMirror_Mirror(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		prefix     string
		event      dispatch.Event
		pubErr     error
		expSubject string
		expErr     string
	}{
		"narration": {
			event:      dispatch.Event{Kind: dispatch.Narration, Targets: []io.Writer{io.Discard, io.Discard}, Text: "Ann takes the flashlight."},
			expSubject: "dungeon.events.narration",
		},
		"notice with prefix": {
			prefix:     "test",
			event:      dispatch.Event{Kind: dispatch.ServerNotice, Targets: []io.Writer{io.Discard}, Text: "Ann connected."},
			expSubject: "test.notice",
		},
		"not started": {
			event:  dispatch.Event{Kind: dispatch.Narration, Targets: []io.Writer{io.Discard}, Text: "x"},
			pubErr: ErrNotStarted,
		},
		"publish fails": {
			event:  dispatch.Event{Kind: dispatch.Narration, Targets: []io.Writer{io.Discard}, Text: "x"},
			pubErr: errors.New("connection closed"),
			expErr: "connection closed",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pub := &recordingPublisher{err: tt.pubErr}
			m := NewEventMirror(pub, tt.prefix)
			m.now = func() time.Time { return at }

			err := m.Mirror(tt.event)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expSubject == "" {
				testutil.AssertEqual(t, "published", len(pub.subjects), 0)
				return
			}

			testutil.AssertEqual(t, "published", len(pub.subjects), 1)
			testutil.AssertEqual(t, "subject", pub.subjects[0], tt.expSubject)

			var got MirroredEvent
			if err := json.Unmarshal(pub.payloads[0], &got); err != nil {
				t.Fatalf("decoding payload: %v", err)
			}
			testutil.AssertEqual(t, "text", got.Text, tt.event.Text)
			testutil.AssertEqual(t, "recipients", got.Recipients, len(tt.event.Targets))
			testutil.AssertEqual(t, "at", got.At.Equal(at), true)
		})
	}
}

func TestNatsServer_MirrorRoundTrip(t *testing.T) {
	s, err := NewNatsServer(WithPort(server.RANDOM_PORT), WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server not ready")
	}

	received := make(chan string, 1)
	unsubscribe, err := s.Subscribe(DefaultSubjectPrefix+".>", func(subject string, data []byte) {
		received <- subject
	})
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer unsubscribe()

	m := NewEventMirror(s, "")
	err = m.Mirror(dispatch.Event{Kind: dispatch.ServerError, Targets: []io.Writer{io.Discard}, Text: "shutting down"})
	if err != nil {
		t.Fatalf("mirroring: %v", err)
	}

	select {
	case subject := <-received:
		testutil.AssertEqual(t, "subject", subject, "dungeon.events.error")
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}
