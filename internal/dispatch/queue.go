package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Roster lists the outputs of every connected player.
type Roster interface {
	Outputs() []io.Writer
}

// Mirror receives a copy of every delivered event.
type Mirror interface {
	Mirror(Event) error
}

// Observer is told about queue activity.
type Observer interface {
	ObserveDepth(depth int)
	ObserveDelivered(kind string, targets int)
	ObserveWriteError(kind string)
}

// Queue is an unbounded FIFO of outbound events drained by a single
// consumer. Every target sees events in the order they were enqueued.
type Queue struct {
	roster   Roster
	mirror   Mirror
	observer Observer
	farewell string

	mu      sync.Mutex
	pending []Event
	stopped bool
	wake    chan struct{}
}

// QueueOpt configures a Queue.
type QueueOpt func(*Queue)

// WithMirror sends a copy of every delivered event to m.
func WithMirror(m Mirror) QueueOpt {
	return func(q *Queue) {
		q.mirror = m
	}
}

// WithObserver reports queue activity to o.
func WithObserver(o Observer) QueueOpt {
	return func(q *Queue) {
		q.observer = o
	}
}

// WithShutdownAlarm sends text to every connected player as a server error
// when the queue is shut down.
func WithShutdownAlarm(text string) QueueOpt {
	return func(q *Queue) {
		q.farewell = text
	}
}

// NewQueue creates a queue whose server-wide events go to roster.
func NewQueue(roster Roster, opts ...QueueOpt) *Queue {
	q := &Queue{
		roster: roster,
		wake:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Narrate queues narration for every target.
func (q *Queue) Narrate(targets []io.Writer, text string) {
	q.enqueue(Event{Kind: Narration, Targets: targets, Text: text})
}

// Notify queues a private notification for target.
func (q *Queue) Notify(target io.Writer, text string) {
	if target == nil {
		return
	}
	q.enqueue(Event{Kind: Notification, Targets: []io.Writer{target}, Text: text})
}

// Announce queues a server-wide notice for everyone connected right now.
func (q *Queue) Announce(text string) {
	q.enqueue(Event{Kind: ServerNotice, Targets: q.roster.Outputs(), Text: text})
}

// Alarm queues a server-wide error for everyone connected right now.
func (q *Queue) Alarm(text string) {
	q.enqueue(Event{Kind: ServerError, Targets: q.roster.Outputs(), Text: text})
}

// Len returns the number of events waiting to be delivered.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) enqueue(e Event) {
	if len(e.Targets) == 0 {
		return
	}

	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, e)
	depth := len(q.pending)
	q.mu.Unlock()

	if q.observer != nil {
		q.observer.ObserveDepth(depth)
	}

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Start delivers events until ctx is canceled, then delivers whatever is
// still queued and stops for good. A panic while delivering is returned as
// an error: losing the consumer means nobody hears anything.
func (q *Queue) Start(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			q.stop()
			err = fmt.Errorf("event dispatch failed: %v", r)
		}
	}()

	slog.InfoContext(ctx, "event dispatch started")
	for {
		select {
		case <-ctx.Done():
			if q.farewell != "" {
				q.Alarm(q.farewell)
			}
			q.drain(ctx)
			q.stop()
			q.drain(ctx)
			slog.InfoContext(ctx, "event dispatch stopped")
			return nil
		case <-q.wake:
			q.drain(ctx)
		}
	}
}

func (q *Queue) stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
}

func (q *Queue) drain(ctx context.Context) {
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, e := range batch {
			q.deliver(ctx, e)
		}
		if q.observer != nil {
			q.observer.ObserveDepth(q.Len())
		}
	}
}

func (q *Queue) deliver(ctx context.Context, e Event) {
	line := []byte(e.Render())
	for _, w := range e.Targets {
		if w == nil {
			continue
		}
		if _, err := w.Write(line); err != nil {
			slog.WarnContext(ctx, "writing event", "kind", e.Kind.String(), "error", err)
			if q.observer != nil {
				q.observer.ObserveWriteError(e.Kind.String())
			}
		}
	}

	if q.observer != nil {
		q.observer.ObserveDelivered(e.Kind.String(), len(e.Targets))
	}
	if q.mirror != nil {
		if err := q.mirror.Mirror(e); err != nil {
			slog.WarnContext(ctx, "mirroring event", "kind", e.Kind.String(), "error", err)
		}
	}
}
