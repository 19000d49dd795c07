package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type TeamRepositoryImpl struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) repositories.TeamRepository {
	return &TeamRepositoryImpl{db: db}
}

func (r *TeamRepositoryImpl) Create(ctx context.Context, team *models.Team) error {
	return wrapErr(r.db.WithContext(ctx).Create(team).Error, "team not found")
}

func (r *TeamRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if err != nil {
		return nil, wrapErr(err, "team not found")
	}
	return &team, nil
}

func (r *TeamRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&team).Error
	if err != nil {
		return nil, wrapErr(err, "team not found")
	}
	return &team, nil
}

func (r *TeamRepositoryImpl) List(ctx context.Context) ([]*models.Team, error) {
	var teams []*models.Team
	err := r.db.WithContext(ctx).Order("id").Find(&teams).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list teams", err)
	}
	return teams, nil
}

func (r *TeamRepositoryImpl) Update(ctx context.Context, team *models.Team) error {
	return wrapErr(r.db.WithContext(ctx).Save(team).Error, "team not found")
}

func (r *TeamRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return wrapErr(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Team{}).Error, "team not found")
}
