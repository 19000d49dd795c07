package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/config"
	"taskboard-api/pkg/logger"
)

type ReviewServiceImpl struct {
	taskRepo   repositories.TaskRepository
	columnRepo repositories.ColumnRepository
	teamRepo   repositories.TeamRepository
	permission services.PermissionService
	transition services.TransitionService
	cache      ports.CachePort
	publisher  ports.BoardEventPublisher
	cfg        config.ReviewConfig
}

func NewReviewService(
	taskRepo repositories.TaskRepository,
	columnRepo repositories.ColumnRepository,
	teamRepo repositories.TeamRepository,
	permission services.PermissionService,
	transition services.TransitionService,
	cache ports.CachePort,
	publisher ports.BoardEventPublisher,
	cfg config.ReviewConfig,
) services.ReviewService {
	return &ReviewServiceImpl{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		teamRepo:   teamRepo,
		permission: permission,
		transition: transition,
		cache:      cache,
		publisher:  publisher,
		cfg:        cfg,
	}
}

func failCycleKey(taskID uint) string {
	return fmt.Sprintf("review:failcycles:%d", taskID)
}

func (s *ReviewServiceImpl) Review(ctx context.Context, actor *models.User, taskID uint, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.StageReview {
		return nil, apperror.Conflict("task is not awaiting review")
	}

	caps, err := s.permission.ResolveBoard(ctx, actor, task.TeamID)
	if err != nil {
		return nil, err
	}
	if !caps.ReviewTask {
		logger.WarnContext(ctx, "Review denied", "task_id", taskID, "actor_id", actor.ID)
		return nil, apperror.Forbidden("not allowed to review tasks on this board")
	}

	if req.Passed != nil && *req.Passed {
		return s.pass(ctx, actor, task, req.Note)
	}
	return s.fail(ctx, actor, task, req.Note)
}

func (s *ReviewServiceImpl) pass(ctx context.Context, actor *models.User, task *models.Task, note string) (*dto.ReviewResponse, error) {
	dest, err := s.columnRepo.GetCompleteColumn(ctx, task.TeamID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := actor.ID
	task.ReviewStatus = models.ReviewPassed
	task.ReviewedBy = &a
	task.ReviewedAt = &now
	task.ReviewNote = note

	events := []*models.HistoryEvent{
		models.NewReviewPassedEvent(task.ID, actor.ID, note),
	}
	if err := s.transition.Apply(ctx, actor, task, dest, events...); err != nil {
		return nil, err
	}

	// Apply clears the review round on column entry only when entering
	// review; leaving it keeps our verdict. Reset the fail counter so a
	// future reopen starts clean.
	if err := s.cache.Del(ctx, failCycleKey(task.ID)); err != nil {
		logger.WarnContext(ctx, "Failed to reset fail cycle counter", "task_id", task.ID, "error", err)
	}

	logger.InfoContext(ctx, "Review passed", "task_id", task.ID, "reviewer_id", actor.ID)
	s.publishReviewed(ctx, actor, task, true)

	return &dto.ReviewResponse{Passed: true, Task: dto.ToTaskResponse(task)}, nil
}

func (s *ReviewServiceImpl) fail(ctx context.Context, actor *models.User, task *models.Task, note string) (*dto.ReviewResponse, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperror.ValidationFailed("a failed review requires a note")
	}

	if s.cfg.MaxFailCycles > 0 {
		ttl := time.Duration(s.cfg.FailCycleHours) * time.Hour
		cycles, err := s.cache.Incr(ctx, failCycleKey(task.ID), ttl)
		if err != nil {
			logger.WarnContext(ctx, "Fail cycle counter unavailable, allowing review", "task_id", task.ID, "error", err)
		} else if cycles > int64(s.cfg.MaxFailCycles) {
			return nil, apperror.Conflict("review fail cycle limit reached for this task")
		}
	}

	reviewColumnID := task.ColumnID
	dest, err := s.rollbackColumn(ctx, task)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := actor.ID
	task.ReviewStatus = models.ReviewFailed
	task.ReviewedBy = &a
	task.ReviewedAt = &now
	task.ReviewNote = note

	events := []*models.HistoryEvent{
		models.NewReviewFailedEvent(task.ID, actor.ID, note, reviewColumnID, dest.ID),
	}
	if err := s.transition.Apply(ctx, actor, task, dest, events...); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Review failed, task rolled back",
		"task_id", task.ID, "reviewer_id", actor.ID, "rollback_column", dest.ID)
	s.publishReviewed(ctx, actor, task, false)

	return &dto.ReviewResponse{Passed: false, Task: dto.ToTaskResponse(task)}, nil
}

// rollbackColumn picks where a failed task goes: the column it occupied
// before entering review, or the team's first doing-stage column when that
// record is missing (imported or seeded tasks).
func (s *ReviewServiceImpl) rollbackColumn(ctx context.Context, task *models.Task) (*models.BoardColumn, error) {
	if task.PreviousColumnID != nil {
		col, err := s.columnRepo.GetByID(ctx, *task.PreviousColumnID)
		if err == nil && col.TeamID == task.TeamID {
			return col, nil
		}
		logger.WarnContext(ctx, "Rollback target missing, falling back to doing column",
			"task_id", task.ID, "previous_column_id", *task.PreviousColumnID)
	}

	columns, err := s.columnRepo.ListByTeam(ctx, task.TeamID)
	if err != nil {
		return nil, err
	}
	for _, col := range columns {
		if col.Stage == models.StageDoing {
			return col, nil
		}
	}
	return nil, apperror.InvalidTransition("board has no column to roll the task back to")
}

func (s *ReviewServiceImpl) publishReviewed(ctx context.Context, actor *models.User, task *models.Task, passed bool) {
	team, err := s.teamRepo.GetByID(ctx, task.TeamID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping review event, team lookup failed", "team_id", task.TeamID, "error", err)
		return
	}
	event := &ports.BoardEvent{
		Type:     ports.EventTaskReviewed,
		TeamID:   task.TeamID,
		TeamSlug: team.Slug,
		TaskID:   task.ID,
		Actor:    actor.Username,
		Data: map[string]any{
			"passed":   passed,
			"columnId": task.ColumnID,
			"status":   string(task.Status),
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish review event", "task_id", task.ID, "error", err)
	}
}
