package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type PermissionHandler struct {
	permissionService services.PermissionService
}

func NewPermissionHandler(permissionService services.PermissionService) *PermissionHandler {
	return &PermissionHandler{
		permissionService: permissionService,
	}
}

// GetTeamPermissions returns the resolved capability matrix for every team
// member
func (h *PermissionHandler) GetTeamPermissions(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	userCtx, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	perms, err := h.permissionService.GetTeamPermissions(ctx, userCtx.ID, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load team permissions", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, perms)
}

// UpdatePermissions upserts one user's override rows and transition rules
func (h *PermissionHandler) UpdatePermissions(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	var req dto.UpdateBoardPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	userCtx, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	if err := h.permissionService.UpdatePermissions(ctx, userCtx.ID, teamID, &req); err != nil {
		logger.WarnContext(ctx, "Permission update failed",
			"team_id", teamID,
			"target_user", req.UserID,
			"error", err,
		)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Permissions updated",
		"team_id", teamID,
		"target_user", req.UserID,
		"updated_by", userCtx.ID,
	)
	return utils.SuccessResponse(c, fiber.Map{"message": "Permissions updated"})
}
