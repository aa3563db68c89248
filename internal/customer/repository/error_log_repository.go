package repository

import (
	"context"
	"time"

	"favorites-api/internal/customer/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errorLogRepository implements ErrorLogRepository on postgres
type errorLogRepository struct {
	db *gorm.DB
}

// NewErrorLogRepository creates a new instance of errorLogRepository
func NewErrorLogRepository(db *gorm.DB) ErrorLogRepository {
	return &errorLogRepository{
		db: db,
	}
}

func (r *errorLogRepository) LogError(ctx context.Context, stack string) error {
	entry := &domain.ErrorLog{
		ID:        uuid.New().String(),
		Stack:     stack,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return domain.StoreFailure("failed to log error", err)
	}
	return nil
}
