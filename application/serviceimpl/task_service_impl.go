package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo   repositories.TaskRepository
	columnRepo repositories.ColumnRepository
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
	fieldRepo  repositories.CustomFieldRepository
	permission services.PermissionService
	transition services.TransitionService
	fieldSvc   services.CustomFieldService
	publisher  ports.BoardEventPublisher
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	columnRepo repositories.ColumnRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	fieldRepo repositories.CustomFieldRepository,
	permission services.PermissionService,
	transition services.TransitionService,
	fieldSvc services.CustomFieldService,
	publisher ports.BoardEventPublisher,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		fieldRepo:  fieldRepo,
		permission: permission,
		transition: transition,
		fieldSvc:   fieldSvc,
		publisher:  publisher,
	}
}

func (s *TaskServiceImpl) Create(ctx context.Context, actor *models.User, req *dto.CreateTaskRequest) (*models.Task, error) {
	column, err := s.resolveCreateColumn(ctx, req)
	if err != nil {
		return nil, err
	}

	caps, err := s.permission.ResolveColumn(ctx, actor, column)
	if err != nil {
		return nil, err
	}
	if !caps.AddTask {
		return nil, apperror.Forbidden("not allowed to add tasks to this column")
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
		if !priority.Valid() {
			return nil, apperror.ValidationFailed("unknown priority")
		}
	}

	if req.AssignedTo != nil {
		if err := s.checkAssignee(ctx, req.TeamID, *req.AssignedTo); err != nil {
			return nil, err
		}
		boardCaps, err := s.permission.ResolveBoard(ctx, actor, req.TeamID)
		if err != nil {
			return nil, err
		}
		if !boardCaps.AssignTask && !caps.AssignTask {
			return nil, apperror.Forbidden("not allowed to assign tasks on this board")
		}
	}

	if err := s.checkRequiredFields(ctx, req.TeamID, req.FieldValues); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		TeamID:               req.TeamID,
		ColumnID:             column.ID,
		Title:                req.Title,
		Description:          req.Description,
		Status:               column.Stage,
		Priority:             priority,
		DueDate:              req.DueDate,
		CreatedBy:            actor.ID,
		ReviewStatus:         models.ReviewNone,
		CurrentColumnEntryAt: now,
	}
	if req.AssignedTo != nil {
		a := actor.ID
		task.AssignedTo = req.AssignedTo
		task.AssignedBy = &a
		task.AssignedAt = &now
	}

	event := models.NewCreatedEvent(0, actor.ID, req.Title)
	if err := s.taskRepo.Create(ctx, task, event); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "team_id", req.TeamID, "error", err)
		return nil, err
	}

	for fieldID, value := range req.FieldValues {
		if err := s.fieldSvc.SetValue(ctx, actor, task.ID, fieldID, &dto.SetFieldValueRequest{Value: value}); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "team_id", req.TeamID, "created_by", actor.ID)
	s.publish(ctx, actor, task, ports.EventTaskCreated, map[string]any{"title": task.Title})
	return task, nil
}

// resolveCreateColumn returns the requested column or, when none is given,
// the team's first todo column.
func (s *TaskServiceImpl) resolveCreateColumn(ctx context.Context, req *dto.CreateTaskRequest) (*models.BoardColumn, error) {
	if req.ColumnID != nil {
		column, err := s.columnRepo.GetByID(ctx, *req.ColumnID)
		if err != nil {
			return nil, err
		}
		if column.TeamID != req.TeamID {
			return nil, apperror.ValidationFailed("column belongs to another team")
		}
		return column, nil
	}

	columns, err := s.columnRepo.ListByTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	for _, col := range columns {
		if col.Stage == models.StageTodo {
			return col, nil
		}
	}
	return nil, apperror.ValidationFailed("board has no todo column to place the task in")
}

func (s *TaskServiceImpl) checkAssignee(ctx context.Context, teamID uint, assigneeID uuid.UUID) error {
	assignee, err := s.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	if !assignee.BelongsToTeam(teamID) {
		return apperror.ValidationFailed("assignee does not belong to this team")
	}
	return nil
}

func (s *TaskServiceImpl) checkRequiredFields(ctx context.Context, teamID uint, values map[uint]string) error {
	fields, err := s.fieldRepo.ListForTeam(ctx, teamID)
	if err != nil {
		return err
	}
	for _, field := range fields {
		if !field.Required || field.Type == models.FieldImage {
			continue
		}
		if values[field.ID] == "" {
			return apperror.ValidationFailed(fmt.Sprintf("required field %q is missing", field.Name))
		}
	}
	return nil
}

func (s *TaskServiceImpl) Get(ctx context.Context, actor *models.User, taskID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsToTeam(task.TeamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}
	return task, nil
}

func (s *TaskServiceImpl) Update(ctx context.Context, actor *models.User, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsArchived {
		return nil, apperror.Conflict("archived tasks are read-only")
	}

	if err := s.checkEditable(ctx, actor, task); err != nil {
		return nil, err
	}

	var events []*models.HistoryEvent
	if req.Title != "" && req.Title != task.Title {
		events = append(events, models.NewUpdatedEvent(task.ID, actor.ID, "title", task.Title, req.Title))
		task.Title = req.Title
	}
	if req.Description != nil && *req.Description != task.Description {
		events = append(events, models.NewUpdatedEvent(task.ID, actor.ID, "description", task.Description, *req.Description))
		task.Description = *req.Description
	}
	if req.Priority != "" && models.Priority(req.Priority) != task.Priority {
		newPriority := models.Priority(req.Priority)
		if !newPriority.Valid() {
			return nil, apperror.ValidationFailed("unknown priority")
		}
		events = append(events, models.NewPriorityChangedEvent(task.ID, actor.ID, task.Priority, newPriority))
		task.Priority = newPriority
	}
	if req.DueDate != nil && (task.DueDate == nil || !req.DueDate.Equal(*task.DueDate)) {
		oldValue := ""
		if task.DueDate != nil {
			oldValue = task.DueDate.Format(time.RFC3339)
		}
		events = append(events, models.NewUpdatedEvent(task.ID, actor.ID, "due_date", oldValue, req.DueDate.Format(time.RFC3339)))
		task.DueDate = req.DueDate
	}

	if len(events) == 0 {
		return task, nil
	}

	if err := s.taskRepo.Save(ctx, task, events...); err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "actor_id", actor.ID, "changes", len(events))
	s.publish(ctx, actor, task, ports.EventTaskUpdated, nil)
	return task, nil
}

// checkEditable: board-wide edit rights, or edit rights in the task's column
func (s *TaskServiceImpl) checkEditable(ctx context.Context, actor *models.User, task *models.Task) error {
	boardCaps, err := s.permission.ResolveBoard(ctx, actor, task.TeamID)
	if err != nil {
		return err
	}
	if boardCaps.EditAllFields {
		return nil
	}

	column, err := s.columnRepo.GetByID(ctx, task.ColumnID)
	if err != nil {
		return err
	}
	colCaps, err := s.permission.ResolveColumn(ctx, actor, column)
	if err != nil {
		return err
	}
	if !colCaps.EditTask {
		return apperror.Forbidden("not allowed to edit tasks in this column")
	}
	return nil
}

func (s *TaskServiceImpl) Assign(ctx context.Context, actor *models.User, taskID uint, req *dto.AssignTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsArchived {
		return nil, apperror.Conflict("archived tasks are read-only")
	}

	boardCaps, err := s.permission.ResolveBoard(ctx, actor, task.TeamID)
	if err != nil {
		return nil, err
	}
	if !boardCaps.AssignTask {
		column, err := s.columnRepo.GetByID(ctx, task.ColumnID)
		if err != nil {
			return nil, err
		}
		colCaps, err := s.permission.ResolveColumn(ctx, actor, column)
		if err != nil {
			return nil, err
		}
		if !colCaps.AssignTask {
			return nil, apperror.Forbidden("not allowed to assign tasks here")
		}
	}

	if err := s.checkAssignee(ctx, task.TeamID, req.AssigneeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := actor.ID
	assignee := req.AssigneeID
	task.AssignedTo = &assignee
	task.AssignedBy = &a
	task.AssignedAt = &now

	event := models.NewAssignedEvent(task.ID, actor.ID, req.AssigneeID)
	if err := s.taskRepo.Save(ctx, task, event); err != nil {
		logger.ErrorContext(ctx, "Failed to assign task", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task assigned", "task_id", taskID, "assignee_id", req.AssigneeID, "actor_id", actor.ID)
	s.publish(ctx, actor, task, ports.EventTaskAssigned, map[string]any{"assigneeId": req.AssigneeID.String()})
	return task, nil
}

func (s *TaskServiceImpl) Move(ctx context.Context, actor *models.User, taskID uint, req *dto.MoveTaskRequest) (*models.Task, error) {
	return s.transition.Move(ctx, actor, taskID, req.ToColumnID)
}

func (s *TaskServiceImpl) Delete(ctx context.Context, actor *models.User, taskID uint) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	boardCaps, err := s.permission.ResolveBoard(ctx, actor, task.TeamID)
	if err != nil {
		return err
	}
	if !boardCaps.DeleteTask {
		column, err := s.columnRepo.GetByID(ctx, task.ColumnID)
		if err != nil {
			return err
		}
		colCaps, err := s.permission.ResolveColumn(ctx, actor, column)
		if err != nil {
			return err
		}
		if !colCaps.DeleteTask {
			return apperror.Forbidden("not allowed to delete this task")
		}
	}

	title := task.Title
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "actor_id", actor.ID)
	s.publish(ctx, actor, task, ports.EventTaskDeleted, map[string]any{"title": title})
	return nil
}

func (s *TaskServiceImpl) publish(ctx context.Context, actor *models.User, task *models.Task, eventType string, data map[string]any) {
	team, err := s.teamRepo.GetByID(ctx, task.TeamID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping task event, team lookup failed", "team_id", task.TeamID, "error", err)
		return
	}
	event := &ports.BoardEvent{
		Type:     eventType,
		TeamID:   task.TeamID,
		TeamSlug: team.Slug,
		TaskID:   task.ID,
		Actor:    actor.Username,
		Data:     data,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event", "task_id", task.ID, "error", err)
	}
}
