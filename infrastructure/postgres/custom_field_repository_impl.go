package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type CustomFieldRepositoryImpl struct {
	db *gorm.DB
}

func NewCustomFieldRepository(db *gorm.DB) repositories.CustomFieldRepository {
	return &CustomFieldRepositoryImpl{db: db}
}

func (r *CustomFieldRepositoryImpl) Create(ctx context.Context, field *models.CustomField) error {
	return wrapErr(r.db.WithContext(ctx).Create(field).Error, "field not found")
}

func (r *CustomFieldRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.CustomField, error) {
	var field models.CustomField
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("id = ?", id).
		First(&field).Error
	if err != nil {
		return nil, wrapErr(err, "field not found")
	}
	return &field, nil
}

func (r *CustomFieldRepositoryImpl) ListForTeam(ctx context.Context, teamID uint) ([]*models.CustomField, error) {
	var fields []*models.CustomField
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("is_active = ? AND (team_id = ? OR team_id IS NULL)", true, teamID).
		Order("id").
		Find(&fields).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list fields", err)
	}
	return fields, nil
}

func (r *CustomFieldRepositoryImpl) Update(ctx context.Context, field *models.CustomField) error {
	return wrapErr(r.db.WithContext(ctx).Omit("Options").Save(field).Error, "field not found")
}

func (r *CustomFieldRepositoryImpl) Deactivate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.CustomField{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return apperror.Persistence("failed to deactivate field", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("field not found")
	}
	return nil
}

func (r *CustomFieldRepositoryImpl) ReplaceOptions(ctx context.Context, fieldID uint, options []*models.CustomFieldOption) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("field_id = ?", fieldID).Delete(&models.CustomFieldOption{}).Error; err != nil {
			return err
		}
		if len(options) == 0 {
			return nil
		}
		return tx.Create(options).Error
	})
	if err != nil {
		return apperror.Persistence("failed to replace field options", err)
	}
	return nil
}

func (r *CustomFieldRepositoryImpl) SetValue(ctx context.Context, value *models.CustomFieldValue) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}, {Name: "field_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "object_key", "mime_type", "updated_at"}),
	}).Create(value).Error
	if err != nil {
		return apperror.Persistence("failed to set field value", err)
	}
	return nil
}

func (r *CustomFieldRepositoryImpl) GetValue(ctx context.Context, taskID, fieldID uint) (*models.CustomFieldValue, error) {
	var value models.CustomFieldValue
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND field_id = ?", taskID, fieldID).
		First(&value).Error
	if err != nil {
		return nil, wrapErr(err, "field value not found")
	}
	return &value, nil
}

func (r *CustomFieldRepositoryImpl) ListValues(ctx context.Context, taskID uint) ([]*models.CustomFieldValue, error) {
	var values []*models.CustomFieldValue
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("field_id").Find(&values).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list field values", err)
	}
	return values, nil
}
