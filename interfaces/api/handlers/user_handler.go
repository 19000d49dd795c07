package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListByTeam returns the members of a team
func (h *UserHandler) ListByTeam(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	users, err := h.userService.ListByTeam(ctx, actor, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to list team members", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.ToUserResponse(u))
	}

	return utils.SuccessResponse(c, responses)
}

// Purge hard-deletes a user account while keeping business records
func (h *UserHandler) Purge(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid user ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	if err := h.userService.Purge(ctx, actor, id); err != nil {
		logger.WarnContext(ctx, "User purge failed", "user_id", id, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "User purged", "user_id", id, "purged_by", actor.ID)
	return utils.NoContentResponse(c)
}
