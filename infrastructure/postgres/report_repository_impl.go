package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type ReportRepositoryImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) repositories.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

func (r *ReportRepositoryImpl) Upsert(ctx context.Context, report *models.DailyReport) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "team_id"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"todo_count", "doing_count", "review_count",
			"complete_count", "archived_count", "overdue_count",
		}),
	}).Create(report).Error
	if err != nil {
		return apperror.Persistence("failed to upsert daily report", err)
	}
	return nil
}

func (r *ReportRepositoryImpl) ListByTeam(ctx context.Context, teamID uint, from, to time.Time) ([]*models.DailyReport, error) {
	var reports []*models.DailyReport
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND report_date >= ? AND report_date <= ?", teamID, from, to).
		Order("report_date DESC").
		Find(&reports).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list daily reports", err)
	}
	return reports, nil
}
