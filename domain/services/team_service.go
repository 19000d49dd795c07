package services

import (
	"context"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

// TeamService manages tenants. Creating a team seeds its default board
// columns, one per stage.
type TeamService interface {
	Create(ctx context.Context, actor *models.User, req *dto.CreateTeamRequest) (*models.Team, error)
	Get(ctx context.Context, actor *models.User, teamID uint) (*models.Team, error)
	List(ctx context.Context, actor *models.User) ([]*models.Team, error)
	Update(ctx context.Context, actor *models.User, teamID uint, req *dto.UpdateTeamRequest) (*models.Team, error)
}
