package services

import (
	"context"
	"io"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

type CustomFieldService interface {
	Create(ctx context.Context, actor *models.User, req *dto.CreateCustomFieldRequest) (*models.CustomField, error)
	ListForTeam(ctx context.Context, actor *models.User, teamID uint) ([]*models.CustomField, error)
	Update(ctx context.Context, actor *models.User, fieldID uint, req *dto.UpdateCustomFieldRequest) (*models.CustomField, error)
	Deactivate(ctx context.Context, actor *models.User, fieldID uint) error

	// SetValue validates the value against the field type (and option list
	// for dropdowns) before writing
	SetValue(ctx context.Context, actor *models.User, taskID, fieldID uint, req *dto.SetFieldValueRequest) error
	ListValues(ctx context.Context, actor *models.User, taskID uint) ([]*dto.FieldValueResponse, error)

	// UploadImage stores the file in object storage and binds the key to the
	// task's image field value
	UploadImage(ctx context.Context, actor *models.User, taskID, fieldID uint, filename, contentType string, size int64, r io.Reader) (*dto.FieldValueResponse, error)
}
