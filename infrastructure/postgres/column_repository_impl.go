package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type ColumnRepositoryImpl struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) repositories.ColumnRepository {
	return &ColumnRepositoryImpl{db: db}
}

func (r *ColumnRepositoryImpl) Create(ctx context.Context, column *models.BoardColumn) error {
	return wrapErr(r.db.WithContext(ctx).Create(column).Error, "column not found")
}

func (r *ColumnRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.BoardColumn, error) {
	var column models.BoardColumn
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error
	if err != nil {
		return nil, wrapErr(err, "column not found")
	}
	return &column, nil
}

func (r *ColumnRepositoryImpl) ListByTeam(ctx context.Context, teamID uint) ([]*models.BoardColumn, error) {
	var columns []*models.BoardColumn
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("position").Find(&columns).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list columns", err)
	}
	return columns, nil
}

func (r *ColumnRepositoryImpl) GetCompleteColumn(ctx context.Context, teamID uint) (*models.BoardColumn, error) {
	var column models.BoardColumn
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND stage = ?", teamID, models.StageComplete).
		Order("position").
		First(&column).Error
	if err != nil {
		return nil, wrapErr(err, "board has no complete column")
	}
	return &column, nil
}

func (r *ColumnRepositoryImpl) Update(ctx context.Context, column *models.BoardColumn) error {
	return wrapErr(r.db.WithContext(ctx).Save(column).Error, "column not found")
}

func (r *ColumnRepositoryImpl) Reorder(ctx context.Context, teamID uint, orderedIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range orderedIDs {
			result := tx.Model(&models.BoardColumn{}).
				Where("id = ? AND team_id = ?", id, teamID).
				Update("position", pos)
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		return apperror.Persistence("failed to reorder columns", err)
	}
	return nil
}

func (r *ColumnRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return wrapErr(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BoardColumn{}).Error, "column not found")
}

func (r *ColumnRepositoryImpl) CountTasks(ctx context.Context, columnID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("column_id = ? AND is_archived = ?", columnID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperror.Persistence("failed to count tasks", err)
	}
	return count, nil
}
