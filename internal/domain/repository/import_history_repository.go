package repository

import (
	"context"

	"logbook-service/internal/domain/entity"
)

// ImportHistoryRepository records preview and import runs for auditing.
type ImportHistoryRepository interface {
	Save(ctx context.Context, run *entity.ImportRun) error
	FindByUser(ctx context.Context, userID string, limit int64) ([]entity.ImportRun, error)
}
