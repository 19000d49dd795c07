package serviceimpl

import (
	"context"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
)

type HistoryServiceImpl struct {
	historyRepo repositories.HistoryRepository
	taskRepo    repositories.TaskRepository
	columnRepo  repositories.ColumnRepository
	permission  services.PermissionService
}

func NewHistoryService(
	historyRepo repositories.HistoryRepository,
	taskRepo repositories.TaskRepository,
	columnRepo repositories.ColumnRepository,
	permission services.PermissionService,
) services.HistoryService {
	return &HistoryServiceImpl{
		historyRepo: historyRepo,
		taskRepo:    taskRepo,
		columnRepo:  columnRepo,
		permission:  permission,
	}
}

func (s *HistoryServiceImpl) ListByTask(ctx context.Context, actor *models.User, taskID uint) ([]*models.HistoryEvent, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	column, err := s.columnRepo.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	caps, err := s.permission.ResolveColumn(ctx, actor, column)
	if err != nil {
		return nil, err
	}
	if !caps.ViewHistory {
		return nil, apperror.Forbidden("not allowed to view this task's history")
	}
	return s.historyRepo.ListByTask(ctx, taskID)
}
