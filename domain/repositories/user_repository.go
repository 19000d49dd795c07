package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListByTeam(ctx context.Context, teamID uint) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error

	// Purge hard-deletes the user while preserving business records: history
	// actor references are nulled (not the rows), task assignments cleared,
	// and the user's permission rows and pending move requests removed,
	// all in one transaction.
	Purge(ctx context.Context, id uuid.UUID) error
}
