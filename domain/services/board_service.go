package services

import (
	"context"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

// BoardService owns the column layout of a team's board
type BoardService interface {
	GetBoard(ctx context.Context, actor *models.User, teamID uint) (*dto.BoardResponse, error)

	CreateColumn(ctx context.Context, actor *models.User, teamID uint, req *dto.CreateColumnRequest) (*models.BoardColumn, error)
	RenameColumn(ctx context.Context, actor *models.User, columnID uint, req *dto.UpdateColumnRequest) (*models.BoardColumn, error)
	ReorderColumns(ctx context.Context, actor *models.User, teamID uint, req *dto.ReorderColumnsRequest) ([]*models.BoardColumn, error)
	// DeleteColumn refuses while unarchived tasks still sit in the column
	DeleteColumn(ctx context.Context, actor *models.User, columnID uint) error
}
