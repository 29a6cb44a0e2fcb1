package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/isaacphi/realty/internal/domain"
)

type TraceRepository interface {
	SaveEvent(ctx context.Context, ev *domain.TraceEvent) error
	// ListEvents returns the most recent events first. limit <= 0 means all.
	ListEvents(ctx context.Context, limit int) ([]domain.TraceEvent, error)
	// ListRun returns one run's events in the order they were emitted.
	ListRun(ctx context.Context, runID uuid.UUID) ([]domain.TraceEvent, error)
	Close() error
}
