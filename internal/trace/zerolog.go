package trace

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LogSink writes each record as one JSON line.
type LogSink struct {
	logger zerolog.Logger
	closer io.Closer
}

func NewLogSink(w io.Writer) *LogSink {
	return &LogSink{logger: zerolog.New(w)}
}

// OpenLogSink appends JSON lines to the file at path.
func OpenLogSink(path string) (*LogSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	sink := NewLogSink(f)
	sink.closer = f
	return sink, nil
}

func (s *LogSink) Write(ctx context.Context, rec Record) error {
	level := zerolog.InfoLevel
	if rec.Error != "" {
		level = zerolog.ErrorLevel
	}
	event := s.logger.WithLevel(level)
	if rec.Error != "" {
		event = event.Str("error", rec.Error)
	}
	event.
		Time("time", rec.Time).
		Str("run_id", rec.RunID.String()).
		Str("session_id", rec.SessionID.String()).
		Str("stage", string(rec.Stage)).
		Interface("payload", rec.Payload)
	if rec.Project != "" {
		event = event.Str("project", rec.Project)
	}
	event.Msg(rec.Name)
	return nil
}

func (s *LogSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
