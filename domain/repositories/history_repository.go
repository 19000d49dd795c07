package repositories

import (
	"context"

	"taskboard-api/domain/models"
)

// HistoryRepository is append-only. Events written alongside task mutations
// go through TaskRepository so they share the mutation's transaction; this
// interface covers standalone appends and the timeline read model.
type HistoryRepository interface {
	Append(ctx context.Context, event *models.HistoryEvent) error
	// ListByTask returns the task's events newest first
	ListByTask(ctx context.Context, taskID uint) ([]*models.HistoryEvent, error)
}
