package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type ArchiveHandler struct {
	archiveService services.ArchiveService
	userService    services.UserService
}

func NewArchiveHandler(archiveService services.ArchiveService, userService services.UserService) *ArchiveHandler {
	return &ArchiveHandler{
		archiveService: archiveService,
		userService:    userService,
	}
}

// ArchiveCompleted batch-archives every completed-and-passed task of the team
func (h *ArchiveHandler) ArchiveCompleted(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	count, err := h.archiveService.ArchiveCompleted(ctx, actor, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Archive run failed", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Archive run completed", "team_id", teamID, "archived", count)
	return utils.SuccessResponse(c, dto.ArchiveResultResponse{ArchivedCount: count})
}

// ArchiveSingle archives one completed task
func (h *ArchiveHandler) ArchiveSingle(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	task, err := h.archiveService.ArchiveSingle(ctx, actor, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to archive task", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ToTaskResponse(task))
}

// PurgeArchived hard-deletes an archived task
func (h *ArchiveHandler) PurgeArchived(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	if err := h.archiveService.PurgeArchived(ctx, actor, taskID); err != nil {
		logger.WarnContext(ctx, "Failed to purge archived task", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Archived task purged", "task_id", taskID)
	return utils.NoContentResponse(c)
}

// ListArchived returns the team's archived partition
func (h *ArchiveHandler) ListArchived(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	tasks, err := h.archiveService.ListArchived(ctx, actor, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to list archived tasks", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ToTaskResponses(tasks))
}
