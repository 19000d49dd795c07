package serviceimpl

import (
	"context"
	"time"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type MoveRequestServiceImpl struct {
	moveRepo   repositories.MoveRequestRepository
	taskRepo   repositories.TaskRepository
	columnRepo repositories.ColumnRepository
	teamRepo   repositories.TeamRepository
	permission services.PermissionService
	transition services.TransitionService
	publisher  ports.BoardEventPublisher
}

func NewMoveRequestService(
	moveRepo repositories.MoveRequestRepository,
	taskRepo repositories.TaskRepository,
	columnRepo repositories.ColumnRepository,
	teamRepo repositories.TeamRepository,
	permission services.PermissionService,
	transition services.TransitionService,
	publisher ports.BoardEventPublisher,
) services.MoveRequestService {
	return &MoveRequestServiceImpl{
		moveRepo:   moveRepo,
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		teamRepo:   teamRepo,
		permission: permission,
		transition: transition,
		publisher:  publisher,
	}
}

func (s *MoveRequestServiceImpl) Create(ctx context.Context, actor *models.User, taskID uint, req *dto.CreateMoveRequestRequest) (*models.MoveRequest, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsTerminal() {
		return nil, apperror.InvalidTransition("task has left the active workflow")
	}
	if !actor.BelongsToTeam(task.TeamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}

	dest, err := s.columnRepo.GetByID(ctx, req.ToColumnID)
	if err != nil {
		return nil, err
	}
	if dest.TeamID != task.TeamID {
		return nil, apperror.InvalidTransition("destination column belongs to another team")
	}
	if dest.ID == task.ColumnID {
		return nil, apperror.ValidationFailed("task is already in that column")
	}

	source, err := s.columnRepo.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}

	// requests exist for moves the actor cannot perform directly
	allowed, err := s.permission.CanTransition(ctx, actor, source, dest)
	if err != nil {
		return nil, err
	}
	if allowed {
		return nil, apperror.Conflict("you can perform this move directly")
	}

	request := &models.MoveRequest{
		TaskID:         task.ID,
		TeamID:         task.TeamID,
		FromColumnID:   source.ID,
		ToColumnID:     dest.ID,
		FromColumnName: source.Name,
		ToColumnName:   dest.Name,
		RequestedBy:    actor.ID,
		Status:         models.MoveRequestPending,
	}
	if err := s.moveRepo.Create(ctx, request); err != nil {
		logger.ErrorContext(ctx, "Failed to create move request", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Move request created",
		"request_id", request.ID, "task_id", taskID, "requested_by", actor.ID,
		"from_column", source.ID, "to_column", dest.ID)
	s.publish(ctx, actor, request, ports.EventMoveRequested)

	return request, nil
}

func (s *MoveRequestServiceImpl) Handle(ctx context.Context, actor *models.User, requestID uint, req *dto.HandleMoveRequestRequest) (*models.MoveRequest, error) {
	request, err := s.moveRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Terminal() {
		return nil, apperror.Conflict("move request already handled")
	}

	caps, err := s.permission.ResolveBoard(ctx, actor, request.TeamID)
	if err != nil {
		return nil, err
	}
	if !caps.ManageBoard {
		return nil, apperror.Forbidden("not allowed to handle move requests for this team")
	}

	approved := req.Approved != nil && *req.Approved
	if approved {
		task, err := s.taskRepo.GetByID(ctx, request.TaskID)
		if err != nil {
			return nil, err
		}
		dest, err := s.columnRepo.GetByID(ctx, request.ToColumnID)
		if err != nil {
			return nil, err
		}
		// the approver carries the authorization; a failed move leaves the
		// request pending for a retry
		if err := s.transition.Apply(ctx, actor, task, dest); err != nil {
			logger.WarnContext(ctx, "Approved move could not be applied",
				"request_id", requestID, "task_id", task.ID, "error", err)
			return nil, err
		}
		request.Status = models.MoveRequestApproved
	} else {
		request.Status = models.MoveRequestRejected
	}

	now := time.Now().UTC()
	a := actor.ID
	request.AdminReply = req.Reply
	request.HandledBy = &a
	request.HandledAt = &now

	if err := s.moveRepo.Update(ctx, request); err != nil {
		logger.ErrorContext(ctx, "Failed to record move request verdict", "request_id", requestID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Move request handled",
		"request_id", requestID, "status", request.Status, "handled_by", actor.ID)
	s.publish(ctx, actor, request, ports.EventMoveRequestClosed)

	return request, nil
}

func (s *MoveRequestServiceImpl) ListPending(ctx context.Context, actor *models.User, teamID uint) ([]*models.MoveRequest, error) {
	caps, err := s.permission.ResolveBoard(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if !caps.ManageBoard {
		return nil, apperror.Forbidden("not allowed to view move requests for this team")
	}
	return s.moveRepo.ListByTeam(ctx, teamID, models.MoveRequestPending)
}

func (s *MoveRequestServiceImpl) publish(ctx context.Context, actor *models.User, request *models.MoveRequest, eventType string) {
	team, err := s.teamRepo.GetByID(ctx, request.TeamID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping move request event, team lookup failed", "team_id", request.TeamID, "error", err)
		return
	}
	event := &ports.BoardEvent{
		Type:     eventType,
		TeamID:   request.TeamID,
		TeamSlug: team.Slug,
		TaskID:   request.TaskID,
		Actor:    actor.Username,
		Data: map[string]any{
			"requestId":    request.ID,
			"status":       string(request.Status),
			"fromColumnId": request.FromColumnID,
			"toColumnId":   request.ToColumnID,
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish move request event", "request_id", request.ID, "error", err)
	}
}
