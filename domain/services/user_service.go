package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByTeam(ctx context.Context, actor *models.User, teamID uint) ([]*models.User, error)

	// Purge hard-deletes a user while keeping business records intact.
	// Admin only.
	Purge(ctx context.Context, actor *models.User, id uuid.UUID) error
}
