package serviceimpl

import (
	"context"
	"time"

	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type ArchiveServiceImpl struct {
	taskRepo   repositories.TaskRepository
	teamRepo   repositories.TeamRepository
	permission services.PermissionService
	publisher  ports.BoardEventPublisher
}

func NewArchiveService(
	taskRepo repositories.TaskRepository,
	teamRepo repositories.TeamRepository,
	permission services.PermissionService,
	publisher ports.BoardEventPublisher,
) services.ArchiveService {
	return &ArchiveServiceImpl{
		taskRepo:   taskRepo,
		teamRepo:   teamRepo,
		permission: permission,
		publisher:  publisher,
	}
}

func (s *ArchiveServiceImpl) ArchiveCompleted(ctx context.Context, actor *models.User, teamID uint) (int64, error) {
	caps, err := s.permission.ResolveBoard(ctx, actor, teamID)
	if err != nil {
		return 0, err
	}
	if !caps.ManageBoard {
		return 0, apperror.Forbidden("not allowed to archive tasks for this team")
	}

	tasks, err := s.taskRepo.ListEligibleForArchive(ctx, teamID)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	events := make([]*models.HistoryEvent, 0, len(tasks))
	for _, task := range tasks {
		task.IsArchived = true
		t := now
		task.ArchivedAt = &t
		events = append(events, models.NewArchivedEvent(task.ID, actor.ID))
	}

	count, err := s.taskRepo.ArchiveBatch(ctx, tasks, events)
	if err != nil {
		logger.ErrorContext(ctx, "Archive batch failed", "team_id", teamID, "error", err)
		return 0, err
	}

	logger.InfoContext(ctx, "Tasks archived", "team_id", teamID, "count", count, "actor_id", actor.ID)
	s.publishArchived(ctx, actor, teamID, count)
	return count, nil
}

func (s *ArchiveServiceImpl) ArchiveSingle(ctx context.Context, actor *models.User, taskID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	caps, err := s.permission.ResolveBoard(ctx, actor, task.TeamID)
	if err != nil {
		return nil, err
	}
	if !caps.ManageBoard {
		return nil, apperror.Forbidden("not allowed to archive tasks for this team")
	}

	if task.IsArchived {
		return nil, apperror.Conflict("task is already archived")
	}
	if !task.ArchiveEligible() {
		return nil, apperror.InvalidTransition("only complete, review-passed tasks can be archived")
	}

	now := time.Now().UTC()
	task.IsArchived = true
	task.ArchivedAt = &now

	event := models.NewArchivedEvent(task.ID, actor.ID)
	if err := s.taskRepo.Save(ctx, task, event); err != nil {
		logger.ErrorContext(ctx, "Failed to archive task", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task archived", "task_id", taskID, "actor_id", actor.ID)
	s.publishArchived(ctx, actor, task.TeamID, 1)
	return task, nil
}

func (s *ArchiveServiceImpl) ListArchived(ctx context.Context, actor *models.User, teamID uint) ([]*models.Task, error) {
	if !actor.BelongsToTeam(teamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}
	return s.taskRepo.ListArchived(ctx, teamID)
}

func (s *ArchiveServiceImpl) PurgeArchived(ctx context.Context, actor *models.User, taskID uint) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("only admins can purge archived tasks")
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.IsArchived {
		return apperror.Conflict("only archived tasks can be purged")
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to purge archived task", "task_id", taskID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Archived task purged", "task_id", taskID, "actor_id", actor.ID)
	return nil
}

func (s *ArchiveServiceImpl) publishArchived(ctx context.Context, actor *models.User, teamID uint, count int64) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping archive event, team lookup failed", "team_id", teamID, "error", err)
		return
	}
	event := &ports.BoardEvent{
		Type:     ports.EventTaskArchived,
		TeamID:   teamID,
		TeamSlug: team.Slug,
		Actor:    actor.Username,
		Data:     map[string]any{"archivedCount": count},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish archive event", "team_id", teamID, "error", err)
	}
}
