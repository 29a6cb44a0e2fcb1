package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/isaacphi/realty/internal/domain"
	"github.com/isaacphi/realty/internal/repository"
)

// Initialize opens the SQLite trace store at dbPath, creating it if needed.
func Initialize(dbPath string) (repository.TraceRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&domain.TraceEvent{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewTraceRepository(db), nil
}
