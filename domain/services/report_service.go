package services

import (
	"context"
	"time"

	"taskboard-api/domain/models"
)

// ReportService snapshots per-team board state. GenerateAll runs from the
// scheduler once a day; ListByTeam serves the history on demand.
type ReportService interface {
	GenerateAll(ctx context.Context) error
	ListByTeam(ctx context.Context, actor *models.User, teamID uint, from, to time.Time) ([]*models.DailyReport, error)
}
