// Package trace forwards conversation events to observability sinks. Emitting
// never fails and never blocks the conversation on a sink error.
package trace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/isaacphi/realty/internal/events"
)

type Tracer interface {
	Emit(ctx context.Context, ev events.Event)
}

// Record is the sink-facing form of an event.
type Record struct {
	RunID     uuid.UUID      `json:"run_id"`
	SessionID uuid.UUID      `json:"session_id"`
	Project   string         `json:"project,omitempty"`
	Name      string         `json:"name"`
	Stage     events.Stage   `json:"stage"`
	Payload   map[string]any `json:"payload"`
	Error     string         `json:"error,omitempty"`
	Time      time.Time      `json:"time"`
}

type Sink interface {
	Write(ctx context.Context, rec Record) error
	Close() error
}

// Nop discards every event. It is the tracer used when nothing is configured.
type Nop struct{}

func (Nop) Emit(context.Context, events.Event) {}

type runKey struct{}

// WithRun tags ctx with a fresh run id; every event emitted under it shares that id.
func WithRun(ctx context.Context) context.Context {
	return context.WithValue(ctx, runKey{}, uuid.New())
}

func RunID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(runKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// Fanout writes every event to all of its sinks.
type Fanout struct {
	project   string
	sessionID uuid.UUID
	sinks     []Sink
	logger    *slog.Logger
	now       func() time.Time
}

func New(project string, sessionID uuid.UUID, logger *slog.Logger, sinks ...Sink) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fanout{
		project:   project,
		sessionID: sessionID,
		sinks:     sinks,
		logger:    logger,
		now:       time.Now,
	}
}

func (t *Fanout) Emit(ctx context.Context, ev events.Event) {
	if len(t.sinks) == 0 {
		return
	}
	rec, ok := t.record(ctx, ev)
	if !ok {
		return
	}
	for _, sink := range t.sinks {
		t.write(ctx, sink, rec)
	}
}

func (t *Fanout) record(ctx context.Context, ev events.Event) (rec Record, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			t.logger.Debug("dropping trace event", "panic", p)
			ok = false
		}
	}()
	rec = Record{
		RunID:     RunID(ctx),
		SessionID: t.sessionID,
		Project:   t.project,
		Name:      ev.Type().String(),
		Stage:     ev.Stage(),
		Payload:   ev.Payload(),
		Time:      t.now().UTC(),
	}
	if err := ev.Err(); err != nil {
		rec.Error = err.Error()
	}
	return rec, true
}

func (t *Fanout) write(ctx context.Context, sink Sink, rec Record) {
	defer func() {
		if p := recover(); p != nil {
			t.logger.Debug("trace sink panicked", "sink", fmt.Sprintf("%T", sink), "panic", p)
		}
	}()
	if err := sink.Write(ctx, rec); err != nil {
		t.logger.Debug("trace sink failed", "sink", fmt.Sprintf("%T", sink), "error", err)
	}
}

func (t *Fanout) Close() error {
	var errs []error
	for _, sink := range t.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
