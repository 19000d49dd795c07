package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/domain/models"
)

type PermissionRepository interface {
	GetBoardPermission(ctx context.Context, userID uuid.UUID, teamID uint) (*models.BoardPermission, error)
	GetColumnPermission(ctx context.Context, userID uuid.UUID, columnID uint) (*models.ColumnPermission, error)
	// GetTransitionRule returns the explicit (user, source, dest) override
	GetTransitionRule(ctx context.Context, userID uuid.UUID, sourceColumnID, destColumnID uint) (*models.TransitionRule, error)

	ListBoardPermissions(ctx context.Context, teamID uint) ([]*models.BoardPermission, error)
	ListColumnPermissions(ctx context.Context, teamID uint) ([]*models.ColumnPermission, error)
	ListTransitionRules(ctx context.Context, teamID uint) ([]*models.TransitionRule, error)

	UpsertBoardPermission(ctx context.Context, perm *models.BoardPermission) error
	UpsertColumnPermission(ctx context.Context, perm *models.ColumnPermission) error
	// ReplaceTransitionRules swaps the user's rule set for the team in one
	// transaction
	ReplaceTransitionRules(ctx context.Context, userID uuid.UUID, teamID uint, rules []*models.TransitionRule) error
}
