package sqlite

import (
	"github.com/isaacphi/realty/internal/repository"

	"gorm.io/gorm"
)

type traceRepo struct {
	db *gorm.DB
}

func NewTraceRepository(db *gorm.DB) repository.TraceRepository {
	return &traceRepo{db: db}
}

func (r *traceRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
