package services

import (
	"context"

	"taskboard-api/domain/models"
)

type HistoryService interface {
	// ListByTask returns the task's timeline newest first, gated on the
	// column-level view-history capability
	ListByTask(ctx context.Context, actor *models.User, taskID uint) ([]*models.HistoryEvent, error)
}
