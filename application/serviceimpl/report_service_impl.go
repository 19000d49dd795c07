package serviceimpl

import (
	"context"
	"time"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type ReportServiceImpl struct {
	teamRepo   repositories.TeamRepository
	taskRepo   repositories.TaskRepository
	reportRepo repositories.ReportRepository
}

func NewReportService(
	teamRepo repositories.TeamRepository,
	taskRepo repositories.TaskRepository,
	reportRepo repositories.ReportRepository,
) services.ReportService {
	return &ReportServiceImpl{
		teamRepo:   teamRepo,
		taskRepo:   taskRepo,
		reportRepo: reportRepo,
	}
}

// GenerateAll snapshots every active team. One failing team does not stop
// the rest; the scheduler gets the last error.
func (s *ReportServiceImpl) GenerateAll(ctx context.Context) error {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var lastErr error
	for _, team := range teams {
		if !team.IsActive {
			continue
		}
		counts, err := s.taskRepo.StageCounts(ctx, team.ID)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to count board state", "team_id", team.ID, "error", err)
			lastErr = err
			continue
		}

		report := &models.DailyReport{
			TeamID:        team.ID,
			ReportDate:    today,
			TodoCount:     counts.Todo,
			DoingCount:    counts.Doing,
			ReviewCount:   counts.Review,
			CompleteCount: counts.Complete,
			ArchivedCount: counts.Archived,
			OverdueCount:  counts.Overdue,
		}
		if err := s.reportRepo.Upsert(ctx, report); err != nil {
			logger.ErrorContext(ctx, "Failed to store daily report", "team_id", team.ID, "error", err)
			lastErr = err
			continue
		}
		logger.InfoContext(ctx, "Daily report stored", "team_id", team.ID, "date", today.Format("2006-01-02"))
	}
	return lastErr
}

func (s *ReportServiceImpl) ListByTeam(ctx context.Context, actor *models.User, teamID uint, from, to time.Time) ([]*models.DailyReport, error) {
	if !actor.BelongsToTeam(teamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}
	return s.reportRepo.ListByTeam(ctx, teamID, from, to)
}
