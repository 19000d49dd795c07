package repositories

import (
	"context"

	"taskboard-api/domain/models"
)

// StageCounts is the per-stage breakdown used by board reports
type StageCounts struct {
	Todo     int64
	Doing    int64
	Review   int64
	Complete int64
	Archived int64
	Overdue  int64
}

type TaskRepository interface {
	// Create persists the task and its creation event atomically
	Create(ctx context.Context, task *models.Task, event *models.HistoryEvent) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	// ListBoard returns the team's unarchived tasks (active board view)
	ListBoard(ctx context.Context, teamID uint) ([]*models.Task, error)
	// ListArchived is the read-only history partition view
	ListArchived(ctx context.Context, teamID uint) ([]*models.Task, error)
	ListEligibleForArchive(ctx context.Context, teamID uint) ([]*models.Task, error)

	// Save writes the task's current state and appends the given history
	// events in a single transaction; if any write fails nothing is applied.
	Save(ctx context.Context, task *models.Task, events ...*models.HistoryEvent) error

	// ArchiveBatch marks the tasks archived and appends one event per task,
	// all in one transaction. Returns the number of tasks archived.
	ArchiveBatch(ctx context.Context, tasks []*models.Task, events []*models.HistoryEvent) (int64, error)

	// Delete hard-deletes the task; field values and history cascade
	Delete(ctx context.Context, id uint) error

	StageCounts(ctx context.Context, teamID uint) (*StageCounts, error)
}
