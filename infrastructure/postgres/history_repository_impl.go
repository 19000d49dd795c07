package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type HistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) repositories.HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

func (r *HistoryRepositoryImpl) Append(ctx context.Context, event *models.HistoryEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperror.Persistence("failed to append history event", err)
	}
	return nil
}

func (r *HistoryRepositoryImpl) ListByTask(ctx context.Context, taskID uint) ([]*models.HistoryEvent, error) {
	var events []*models.HistoryEvent
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list history", err)
	}
	return events, nil
}
