package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type TaskHandler struct {
	taskService    services.TaskService
	historyService services.HistoryService
	userService    services.UserService
}

func NewTaskHandler(taskService services.TaskService, historyService services.HistoryService, userService services.UserService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		historyService: historyService,
		userService:    userService,
	}
}

// Create creates a task, defaulting to the team's first todo column
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	task, err := h.taskService.Create(ctx, actor, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "team_id", req.TeamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "team_id", task.TeamID)
	return utils.CreatedResponse(c, dto.ToTaskResponse(task))
}

// Get returns one task
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	task, err := h.taskService.Get(ctx, actor, taskID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ToTaskResponse(task))
}

// Update edits the task fields. Archived tasks are read-only.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	task, err := h.taskService.Update(ctx, actor, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID)
	return utils.SuccessResponse(c, dto.ToTaskResponse(task))
}

// Assign sets the task's assignee
func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	task, err := h.taskService.Assign(ctx, actor, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task assignment failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task assigned", "task_id", taskID, "assignee", req.AssigneeID)
	return utils.SuccessResponse(c, dto.ToTaskResponse(task))
}

// Move performs a permission-checked column transition
func (h *TaskHandler) Move(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.MoveTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	task, err := h.taskService.Move(ctx, actor, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task move failed", "task_id", taskID, "to_column", req.ToColumnID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task moved", "task_id", taskID, "to_column", req.ToColumnID)
	return utils.SuccessResponse(c, dto.ToTaskResponse(task))
}

// Delete removes a task and its history
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	if err := h.taskService.Delete(ctx, actor, taskID); err != nil {
		logger.WarnContext(ctx, "Task delete failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)
	return utils.NoContentResponse(c)
}

// History returns the task's timeline newest first
func (h *TaskHandler) History(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	events, err := h.historyService.ListByTask(ctx, actor, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to list task history", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ToHistoryEventResponses(events))
}
