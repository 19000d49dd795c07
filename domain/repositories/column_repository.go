package repositories

import (
	"context"

	"taskboard-api/domain/models"
)

type ColumnRepository interface {
	Create(ctx context.Context, column *models.BoardColumn) error
	GetByID(ctx context.Context, id uint) (*models.BoardColumn, error)
	// ListByTeam returns the team's columns ordered by position
	ListByTeam(ctx context.Context, teamID uint) ([]*models.BoardColumn, error)
	// GetCompleteColumn returns the team's designated Complete column (the
	// first complete-stage column by position)
	GetCompleteColumn(ctx context.Context, teamID uint) (*models.BoardColumn, error)
	Update(ctx context.Context, column *models.BoardColumn) error
	// Reorder rewrites the positions of the team's columns to match the given
	// id order, in one transaction
	Reorder(ctx context.Context, teamID uint, orderedIDs []uint) error
	Delete(ctx context.Context, id uint) error
	// CountTasks counts unarchived tasks still referencing the column
	CountTasks(ctx context.Context, columnID uint) (int64, error)
}
