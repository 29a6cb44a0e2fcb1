package trace

import (
	"context"
	"encoding/json"

	"github.com/isaacphi/realty/internal/domain"
	"github.com/isaacphi/realty/internal/repository"
)

// StoreSink persists records through a TraceRepository.
type StoreSink struct {
	repo repository.TraceRepository
}

func NewStoreSink(repo repository.TraceRepository) *StoreSink {
	return &StoreSink{repo: repo}
}

func (s *StoreSink) Write(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return err
	}
	return s.repo.SaveEvent(ctx, &domain.TraceEvent{
		RunID:     rec.RunID,
		SessionID: rec.SessionID,
		Project:   rec.Project,
		Name:      rec.Name,
		Status:    string(rec.Stage),
		Payload:   string(payload),
		Error:     rec.Error,
		CreatedAt: rec.Time,
	})
}

func (s *StoreSink) Close() error {
	return s.repo.Close()
}
