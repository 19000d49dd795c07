package services

import (
	"context"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

type TaskService interface {
	Create(ctx context.Context, actor *models.User, req *dto.CreateTaskRequest) (*models.Task, error)
	Get(ctx context.Context, actor *models.User, taskID uint) (*models.Task, error)
	Update(ctx context.Context, actor *models.User, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error)
	Assign(ctx context.Context, actor *models.User, taskID uint, req *dto.AssignTaskRequest) (*models.Task, error)
	Move(ctx context.Context, actor *models.User, taskID uint, req *dto.MoveTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, actor *models.User, taskID uint) error
}
