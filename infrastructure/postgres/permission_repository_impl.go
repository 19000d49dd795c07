package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type PermissionRepositoryImpl struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) repositories.PermissionRepository {
	return &PermissionRepositoryImpl{db: db}
}

func (r *PermissionRepositoryImpl) GetBoardPermission(ctx context.Context, userID uuid.UUID, teamID uint) (*models.BoardPermission, error) {
	var perm models.BoardPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		First(&perm).Error
	if err != nil {
		return nil, wrapErr(err, "board permission not found")
	}
	return &perm, nil
}

func (r *PermissionRepositoryImpl) GetColumnPermission(ctx context.Context, userID uuid.UUID, columnID uint) (*models.ColumnPermission, error) {
	var perm models.ColumnPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND column_id = ?", userID, columnID).
		First(&perm).Error
	if err != nil {
		return nil, wrapErr(err, "column permission not found")
	}
	return &perm, nil
}

func (r *PermissionRepositoryImpl) GetTransitionRule(ctx context.Context, userID uuid.UUID, sourceColumnID, destColumnID uint) (*models.TransitionRule, error) {
	var rule models.TransitionRule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND source_column_id = ? AND dest_column_id = ?", userID, sourceColumnID, destColumnID).
		First(&rule).Error
	if err != nil {
		return nil, wrapErr(err, "transition rule not found")
	}
	return &rule, nil
}

func (r *PermissionRepositoryImpl) ListBoardPermissions(ctx context.Context, teamID uint) ([]*models.BoardPermission, error) {
	var perms []*models.BoardPermission
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Find(&perms).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list board permissions", err)
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) ListColumnPermissions(ctx context.Context, teamID uint) ([]*models.ColumnPermission, error) {
	var perms []*models.ColumnPermission
	err := r.db.WithContext(ctx).
		Joins("JOIN board_columns ON board_columns.id = column_permissions.column_id").
		Where("board_columns.team_id = ?", teamID).
		Find(&perms).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list column permissions", err)
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) ListTransitionRules(ctx context.Context, teamID uint) ([]*models.TransitionRule, error) {
	var rules []*models.TransitionRule
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Find(&rules).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list transition rules", err)
	}
	return rules, nil
}

func (r *PermissionRepositoryImpl) UpsertBoardPermission(ctx context.Context, perm *models.BoardPermission) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "team_id"}},
		UpdateAll: true,
	}).Create(perm).Error
	if err != nil {
		return apperror.Persistence("failed to upsert board permission", err)
	}
	return nil
}

func (r *PermissionRepositoryImpl) UpsertColumnPermission(ctx context.Context, perm *models.ColumnPermission) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "column_id"}},
		UpdateAll: true,
	}).Create(perm).Error
	if err != nil {
		return apperror.Persistence("failed to upsert column permission", err)
	}
	return nil
}

func (r *PermissionRepositoryImpl) ReplaceTransitionRules(ctx context.Context, userID uuid.UUID, teamID uint, rules []*models.TransitionRule) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND team_id = ?", userID, teamID).
			Delete(&models.TransitionRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(rules).Error
	})
	if err != nil {
		return apperror.Persistence("failed to replace transition rules", err)
	}
	return nil
}
