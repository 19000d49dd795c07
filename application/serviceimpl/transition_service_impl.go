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

type TransitionServiceImpl struct {
	taskRepo   repositories.TaskRepository
	columnRepo repositories.ColumnRepository
	teamRepo   repositories.TeamRepository
	permission services.PermissionService
	publisher  ports.BoardEventPublisher
}

func NewTransitionService(
	taskRepo repositories.TaskRepository,
	columnRepo repositories.ColumnRepository,
	teamRepo repositories.TeamRepository,
	permission services.PermissionService,
	publisher ports.BoardEventPublisher,
) services.TransitionService {
	return &TransitionServiceImpl{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		teamRepo:   teamRepo,
		permission: permission,
		publisher:  publisher,
	}
}

func (s *TransitionServiceImpl) Move(ctx context.Context, actor *models.User, taskID, toColumnID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	dest, err := s.columnRepo.GetByID(ctx, toColumnID)
	if err != nil {
		return nil, err
	}
	source, err := s.columnRepo.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.permission.CanTransition(ctx, actor, source, dest)
	if err != nil {
		return nil, err
	}
	if !allowed {
		logger.WarnContext(ctx, "Transition denied",
			"task_id", taskID, "actor_id", actor.ID,
			"from_column", source.ID, "to_column", dest.ID)
		return nil, apperror.Forbidden("not allowed to move this task to that column")
	}

	if err := s.Apply(ctx, actor, task, dest); err != nil {
		return nil, err
	}
	return task, nil
}

// Apply enforces the state invariants, mutates the task, and commits the move
// together with its history events.
func (s *TransitionServiceImpl) Apply(ctx context.Context, actor *models.User, task *models.Task, dest *models.BoardColumn, extra ...*models.HistoryEvent) error {
	if task.IsTerminal() {
		return apperror.InvalidTransition("task has left the active workflow")
	}
	if dest.TeamID != task.TeamID {
		return apperror.InvalidTransition("destination column belongs to another team")
	}
	if dest.ID == task.ColumnID {
		return apperror.InvalidTransition("task is already in that column")
	}
	if !dest.Stage.Valid() {
		return apperror.InvalidTransition("destination column has no valid stage")
	}

	now := time.Now().UTC()
	fromColumnID := task.ColumnID
	fromStage := task.Status
	dwell := now.Sub(task.CurrentColumnEntryAt)

	events := []*models.HistoryEvent{
		models.NewColumnMovedEvent(task.ID, actor.ID, fromColumnID, dest.ID, dwell),
	}
	if fromStage != dest.Stage {
		events = append(events, models.NewStatusChangedEvent(task.ID, actor.ID, fromStage, dest.Stage))
	}
	events = append(events, extra...)

	// entering review: remember where the task came from so a failed review
	// can roll it back, and open a fresh review round
	if dest.Stage == models.StageReview && fromStage != models.StageReview {
		from := fromColumnID
		task.PreviousColumnID = &from
		task.ReviewStatus = models.ReviewNone
		task.ReviewedBy = nil
		task.ReviewedAt = nil
		task.ReviewNote = ""
		events = append(events, models.NewReviewSubmittedEvent(task.ID, actor.ID))
	}
	if fromStage == models.StageReview && dest.Stage != models.StageReview {
		task.PreviousColumnID = nil
	}

	if dest.Stage == models.StageComplete {
		if task.CompletedAt == nil {
			a := actor.ID
			task.CompletedBy = &a
			task.CompletedAt = &now
		}
	} else if fromStage == models.StageComplete {
		task.CompletedBy = nil
		task.CompletedAt = nil
	}

	task.ColumnID = dest.ID
	task.Status = dest.Stage
	task.CurrentColumnEntryAt = now

	if err := s.taskRepo.Save(ctx, task, events...); err != nil {
		logger.ErrorContext(ctx, "Failed to persist transition",
			"task_id", task.ID, "to_column", dest.ID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task moved",
		"task_id", task.ID, "actor_id", actor.ID,
		"from_column", fromColumnID, "to_column", dest.ID,
		"dwell_seconds", int64(dwell.Seconds()))

	s.publishMoved(ctx, actor, task, fromColumnID)
	return nil
}

func (s *TransitionServiceImpl) publishMoved(ctx context.Context, actor *models.User, task *models.Task, fromColumnID uint) {
	team, err := s.teamRepo.GetByID(ctx, task.TeamID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping move event, team lookup failed", "team_id", task.TeamID, "error", err)
		return
	}
	event := &ports.BoardEvent{
		Type:     ports.EventTaskMoved,
		TeamID:   task.TeamID,
		TeamSlug: team.Slug,
		TaskID:   task.ID,
		Actor:    actor.Username,
		Data: map[string]any{
			"fromColumnId": fromColumnID,
			"toColumnId":   task.ColumnID,
			"status":       string(task.Status),
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish move event", "task_id", task.ID, "error", err)
	}
}
