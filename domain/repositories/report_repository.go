package repositories

import (
	"context"
	"time"

	"taskboard-api/domain/models"
)

type ReportRepository interface {
	// Upsert writes the snapshot for (team, date), replacing an earlier run
	// of the same day
	Upsert(ctx context.Context, report *models.DailyReport) error
	ListByTeam(ctx context.Context, teamID uint, from, to time.Time) ([]*models.DailyReport, error)
}
