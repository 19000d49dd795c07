package repositories

import (
	"context"

	"taskboard-api/domain/models"
)

type CustomFieldRepository interface {
	Create(ctx context.Context, field *models.CustomField) error
	GetByID(ctx context.Context, id uint) (*models.CustomField, error)
	// ListForTeam returns active fields visible to the team: team-scoped
	// rows plus globals
	ListForTeam(ctx context.Context, teamID uint) ([]*models.CustomField, error)
	Update(ctx context.Context, field *models.CustomField) error
	// Deactivate soft-deletes the field definition
	Deactivate(ctx context.Context, id uint) error
	// ReplaceOptions swaps a dropdown field's ordered option list
	ReplaceOptions(ctx context.Context, fieldID uint, options []*models.CustomFieldOption) error

	SetValue(ctx context.Context, value *models.CustomFieldValue) error
	GetValue(ctx context.Context, taskID, fieldID uint) (*models.CustomFieldValue, error)
	ListValues(ctx context.Context, taskID uint) ([]*models.CustomFieldValue, error)
}
