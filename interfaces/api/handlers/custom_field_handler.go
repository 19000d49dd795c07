package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type CustomFieldHandler struct {
	fieldService  services.CustomFieldService
	userService   services.UserService
	maxUploadSize int64
}

func NewCustomFieldHandler(fieldService services.CustomFieldService, userService services.UserService, maxUploadSize int64) *CustomFieldHandler {
	return &CustomFieldHandler{
		fieldService:  fieldService,
		userService:   userService,
		maxUploadSize: maxUploadSize,
	}
}

// Create defines a custom field, team-scoped or global
func (h *CustomFieldHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateCustomFieldRequest
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

	field, err := h.fieldService.Create(ctx, actor, &req)
	if err != nil {
		logger.WarnContext(ctx, "Field creation failed", "name", req.Name, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Custom field created", "field_id", field.ID, "name", field.Name)
	return utils.CreatedResponse(c, dto.ToCustomFieldResponse(field))
}

// ListForTeam returns the active fields visible to a team
func (h *CustomFieldHandler) ListForTeam(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	fields, err := h.fieldService.ListForTeam(ctx, actor, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to list fields", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.CustomFieldResponse, 0, len(fields))
	for _, f := range fields {
		responses = append(responses, dto.ToCustomFieldResponse(f))
	}

	return utils.SuccessResponse(c, responses)
}

// Update edits a field definition
func (h *CustomFieldHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	fieldID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid field ID")
	}

	var req dto.UpdateCustomFieldRequest
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

	field, err := h.fieldService.Update(ctx, actor, fieldID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Field update failed", "field_id", fieldID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Custom field updated", "field_id", fieldID)
	return utils.SuccessResponse(c, dto.ToCustomFieldResponse(field))
}

// Deactivate soft-deletes a field definition; existing values stay readable
func (h *CustomFieldHandler) Deactivate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	fieldID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid field ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	if err := h.fieldService.Deactivate(ctx, actor, fieldID); err != nil {
		logger.WarnContext(ctx, "Field deactivation failed", "field_id", fieldID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Custom field deactivated", "field_id", fieldID)
	return utils.NoContentResponse(c)
}

// SetValue writes a task's value for a non-image field
func (h *CustomFieldHandler) SetValue(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	fieldID, err := parseUintParam(c, "fieldId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid field ID")
	}

	var req dto.SetFieldValueRequest
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

	if err := h.fieldService.SetValue(ctx, actor, taskID, fieldID, &req); err != nil {
		logger.WarnContext(ctx, "Field value update failed", "task_id", taskID, "field_id", fieldID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Field value set", "task_id", taskID, "field_id", fieldID)
	return utils.SuccessResponse(c, fiber.Map{"message": "Field value updated"})
}

// ListValues returns every field value of a task
func (h *CustomFieldHandler) ListValues(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	values, err := h.fieldService.ListValues(ctx, actor, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to list field values", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, values)
}

// UploadImage stores an image payload for an image-typed field
func (h *CustomFieldHandler) UploadImage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	fieldID, err := parseUintParam(c, "fieldId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid field ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequestResponse(c, "Missing file upload")
	}

	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		return utils.BadRequestResponse(c, "File exceeds the upload size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open uploaded file", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
	defer file.Close()

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	contentType := fileHeader.Header.Get("Content-Type")

	value, err := h.fieldService.UploadImage(ctx, actor, taskID, fieldID,
		fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		logger.WarnContext(ctx, "Image upload failed", "task_id", taskID, "field_id", fieldID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Field image uploaded",
		"task_id", taskID,
		"field_id", fieldID,
		"size", fileHeader.Size,
	)
	return utils.CreatedResponse(c, value)
}
