package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type TeamHandler struct {
	teamService services.TeamService
	userService services.UserService
}

func NewTeamHandler(teamService services.TeamService, userService services.UserService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		userService: userService,
	}
}

// Create creates a team and seeds its default board columns
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTeamRequest
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

	team, err := h.teamService.Create(ctx, actor, &req)
	if err != nil {
		logger.WarnContext(ctx, "Team creation failed", "name", req.Name, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Team created", "team_id", team.ID, "slug", team.Slug)
	return utils.CreatedResponse(c, dto.ToTeamResponse(team))
}

// Get returns one team
func (h *TeamHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	team, err := h.teamService.Get(ctx, actor, teamID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ToTeamResponse(team))
}

// List returns the teams visible to the actor
func (h *TeamHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	teams, err := h.teamService.List(ctx, actor)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list teams", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, dto.ToTeamResponse(t))
	}

	return utils.SuccessResponse(c, responses)
}

// Update renames a team. The slug stays stable because it doubles as the
// board room name.
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	var req dto.UpdateTeamRequest
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

	team, err := h.teamService.Update(ctx, actor, teamID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Team update failed", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Team updated", "team_id", teamID)
	return utils.SuccessResponse(c, dto.ToTeamResponse(team))
}
