package repositories

import (
	"context"

	"taskboard-api/domain/models"
)

type MoveRequestRepository interface {
	Create(ctx context.Context, request *models.MoveRequest) error
	GetByID(ctx context.Context, id uint) (*models.MoveRequest, error)
	ListByTeam(ctx context.Context, teamID uint, status models.MoveRequestStatus) ([]*models.MoveRequest, error)
	Update(ctx context.Context, request *models.MoveRequest) error
}
