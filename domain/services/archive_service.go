package services

import (
	"context"

	"taskboard-api/domain/models"
)

// ArchiveService moves completed-and-passed tasks off the active board into
// the read-only history partition.
type ArchiveService interface {
	// ArchiveCompleted archives every eligible task of the team in one batch
	// and returns how many were archived. Zero eligible tasks is a no-op,
	// not an error.
	ArchiveCompleted(ctx context.Context, actor *models.User, teamID uint) (int64, error)
	// ArchiveSingle archives one task; only complete, review-passed tasks
	// qualify
	ArchiveSingle(ctx context.Context, actor *models.User, taskID uint) (*models.Task, error)
	ListArchived(ctx context.Context, actor *models.User, teamID uint) ([]*models.Task, error)
	// PurgeArchived hard-deletes an archived task with its field values and
	// history. Admin only.
	PurgeArchived(ctx context.Context, actor *models.User, taskID uint) error
}
