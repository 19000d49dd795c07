package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type MoveRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewMoveRequestRepository(db *gorm.DB) repositories.MoveRequestRepository {
	return &MoveRequestRepositoryImpl{db: db}
}

func (r *MoveRequestRepositoryImpl) Create(ctx context.Context, request *models.MoveRequest) error {
	return wrapErr(r.db.WithContext(ctx).Create(request).Error, "move request not found")
}

func (r *MoveRequestRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.MoveRequest, error) {
	var request models.MoveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, wrapErr(err, "move request not found")
	}
	return &request, nil
}

func (r *MoveRequestRepositoryImpl) ListByTeam(ctx context.Context, teamID uint, status models.MoveRequestStatus) ([]*models.MoveRequest, error) {
	var requests []*models.MoveRequest
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, status).
		Order("created_at").
		Find(&requests).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list move requests", err)
	}
	return requests, nil
}

func (r *MoveRequestRepositoryImpl) Update(ctx context.Context, request *models.MoveRequest) error {
	return wrapErr(r.db.WithContext(ctx).Save(request).Error, "move request not found")
}
