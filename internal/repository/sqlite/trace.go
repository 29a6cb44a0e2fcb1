package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/isaacphi/realty/internal/domain"
)

func (r *traceRepo) SaveEvent(ctx context.Context, ev *domain.TraceEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *traceRepo) ListEvents(ctx context.Context, limit int) ([]domain.TraceEvent, error) {
	var evs []domain.TraceEvent
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("rowid DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&evs).Error; err != nil {
		return nil, err
	}
	return evs, nil
}

func (r *traceRepo) ListRun(ctx context.Context, runID uuid.UUID) ([]domain.TraceEvent, error) {
	var evs []domain.TraceEvent
	if err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("created_at ASC").
		Order("rowid ASC").
		Find(&evs).Error; err != nil {
		return nil, err
	}
	return evs, nil
}
