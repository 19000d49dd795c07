package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	resp, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "email", req.Email, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", resp.User.ID, "email", resp.User.Email)
	return utils.CreatedResponse(c, resp)
}

// Login authenticates a user and issues a JWT
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	resp, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", req.Email)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", resp.User.ID)
	return utils.SuccessResponse(c, resp)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := loadActor(c, h.userService)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load user profile", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ToUserResponse(user))
}
