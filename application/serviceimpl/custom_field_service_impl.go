package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type CustomFieldServiceImpl struct {
	fieldRepo     repositories.CustomFieldRepository
	taskRepo      repositories.TaskRepository
	columnRepo    repositories.ColumnRepository
	permission    services.PermissionService
	storage       ports.StoragePort
	maxUploadSize int64
}

func NewCustomFieldService(
	fieldRepo repositories.CustomFieldRepository,
	taskRepo repositories.TaskRepository,
	columnRepo repositories.ColumnRepository,
	permission services.PermissionService,
	storage ports.StoragePort,
	maxUploadSize int64,
) services.CustomFieldService {
	return &CustomFieldServiceImpl{
		fieldRepo:     fieldRepo,
		taskRepo:      taskRepo,
		columnRepo:    columnRepo,
		permission:    permission,
		storage:       storage,
		maxUploadSize: maxUploadSize,
	}
}

func (s *CustomFieldServiceImpl) Create(ctx context.Context, actor *models.User, req *dto.CreateCustomFieldRequest) (*models.CustomField, error) {
	if req.TeamID == nil {
		if !actor.IsAdmin() {
			return nil, apperror.Forbidden("only admins can create global fields")
		}
	} else if !actor.ManagesTeam(*req.TeamID) {
		return nil, apperror.Forbidden("not allowed to manage fields for this team")
	}

	fieldType := models.FieldType(req.Type)
	if !fieldType.Valid() {
		return nil, apperror.ValidationFailed("unknown field type")
	}
	if fieldType == models.FieldDropdown && len(req.Options) == 0 {
		return nil, apperror.ValidationFailed("dropdown fields need at least one option")
	}
	if fieldType != models.FieldDropdown && len(req.Options) > 0 {
		return nil, apperror.ValidationFailed("options are only valid for dropdown fields")
	}

	field := &models.CustomField{
		TeamID:   req.TeamID,
		Name:     req.Name,
		Type:     fieldType,
		Required: req.Required,
		IsActive: true,
	}
	for i, opt := range req.Options {
		field.Options = append(field.Options, models.CustomFieldOption{Value: opt, Position: i})
	}

	if err := s.fieldRepo.Create(ctx, field); err != nil {
		logger.ErrorContext(ctx, "Failed to create custom field", "name", req.Name, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Custom field created", "field_id", field.ID, "type", fieldType)
	return field, nil
}

func (s *CustomFieldServiceImpl) ListForTeam(ctx context.Context, actor *models.User, teamID uint) ([]*models.CustomField, error) {
	if !actor.BelongsToTeam(teamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}
	return s.fieldRepo.ListForTeam(ctx, teamID)
}

func (s *CustomFieldServiceImpl) Update(ctx context.Context, actor *models.User, fieldID uint, req *dto.UpdateCustomFieldRequest) (*models.CustomField, error) {
	field, err := s.fieldRepo.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if err := s.checkManage(actor, field); err != nil {
		return nil, err
	}

	if req.Name != "" {
		field.Name = req.Name
	}
	if req.Required != nil {
		field.Required = *req.Required
	}
	if err := s.fieldRepo.Update(ctx, field); err != nil {
		logger.ErrorContext(ctx, "Failed to update custom field", "field_id", fieldID, "error", err)
		return nil, err
	}

	if len(req.Options) > 0 {
		if field.Type != models.FieldDropdown {
			return nil, apperror.ValidationFailed("options are only valid for dropdown fields")
		}
		options := make([]*models.CustomFieldOption, 0, len(req.Options))
		for i, opt := range req.Options {
			options = append(options, &models.CustomFieldOption{FieldID: field.ID, Value: opt, Position: i})
		}
		if err := s.fieldRepo.ReplaceOptions(ctx, field.ID, options); err != nil {
			logger.ErrorContext(ctx, "Failed to replace field options", "field_id", fieldID, "error", err)
			return nil, err
		}
		field.Options = nil
		for _, o := range options {
			field.Options = append(field.Options, *o)
		}
	}

	logger.InfoContext(ctx, "Custom field updated", "field_id", fieldID)
	return field, nil
}

func (s *CustomFieldServiceImpl) Deactivate(ctx context.Context, actor *models.User, fieldID uint) error {
	field, err := s.fieldRepo.GetByID(ctx, fieldID)
	if err != nil {
		return err
	}
	if err := s.checkManage(actor, field); err != nil {
		return err
	}

	if err := s.fieldRepo.Deactivate(ctx, fieldID); err != nil {
		logger.ErrorContext(ctx, "Failed to deactivate custom field", "field_id", fieldID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Custom field deactivated", "field_id", fieldID)
	return nil
}

func (s *CustomFieldServiceImpl) checkManage(actor *models.User, field *models.CustomField) error {
	if field.TeamID == nil {
		if !actor.IsAdmin() {
			return apperror.Forbidden("only admins can manage global fields")
		}
		return nil
	}
	if !actor.ManagesTeam(*field.TeamID) {
		return apperror.Forbidden("not allowed to manage fields for this team")
	}
	return nil
}

func (s *CustomFieldServiceImpl) SetValue(ctx context.Context, actor *models.User, taskID, fieldID uint, req *dto.SetFieldValueRequest) error {
	task, field, err := s.loadTaskField(ctx, actor, taskID, fieldID)
	if err != nil {
		return err
	}
	if field.Type == models.FieldImage {
		return apperror.ValidationFailed("image fields take uploads, not inline values")
	}
	if err := validateFieldValue(field, req.Value); err != nil {
		return err
	}

	old, _ := s.fieldRepo.GetValue(ctx, taskID, fieldID)
	oldValue := ""
	if old != nil {
		oldValue = old.Value
	}

	value := &models.CustomFieldValue{
		TaskID:  taskID,
		FieldID: fieldID,
		Value:   req.Value,
	}
	if err := s.fieldRepo.SetValue(ctx, value); err != nil {
		logger.ErrorContext(ctx, "Failed to set field value", "task_id", taskID, "field_id", fieldID, "error", err)
		return err
	}

	if oldValue != req.Value {
		event := models.NewFieldValueChangedEvent(taskID, actor.ID, field.Name, oldValue, req.Value)
		if err := s.taskRepo.Save(ctx, task, event); err != nil {
			logger.WarnContext(ctx, "Failed to record field value change", "task_id", taskID, "error", err)
		}
	}
	return nil
}

// validateFieldValue checks the value against the field's declared type
func validateFieldValue(field *models.CustomField, value string) error {
	if value == "" {
		if field.Required {
			return apperror.ValidationFailed(fmt.Sprintf("field %q is required", field.Name))
		}
		return nil
	}

	switch field.Type {
	case models.FieldText:
		return nil
	case models.FieldNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return apperror.ValidationFailed(fmt.Sprintf("field %q expects a number", field.Name))
		}
	case models.FieldDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return apperror.ValidationFailed(fmt.Sprintf("field %q expects a date (YYYY-MM-DD)", field.Name))
		}
	case models.FieldTime:
		if _, err := time.Parse("15:04", value); err != nil {
			return apperror.ValidationFailed(fmt.Sprintf("field %q expects a time (HH:MM)", field.Name))
		}
	case models.FieldDateTime:
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return apperror.ValidationFailed(fmt.Sprintf("field %q expects an RFC3339 timestamp", field.Name))
		}
	case models.FieldDropdown:
		for _, opt := range field.Options {
			if opt.Value == value {
				return nil
			}
		}
		return apperror.ValidationFailed(fmt.Sprintf("field %q does not allow value %q", field.Name, value))
	}
	return nil
}

func (s *CustomFieldServiceImpl) ListValues(ctx context.Context, actor *models.User, taskID uint) ([]*dto.FieldValueResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsToTeam(task.TeamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}

	values, err := s.fieldRepo.ListValues(ctx, taskID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.FieldValueResponse, 0, len(values))
	for _, v := range values {
		resp := &dto.FieldValueResponse{
			FieldID:  v.FieldID,
			TaskID:   v.TaskID,
			Value:    v.Value,
			MimeType: v.MimeType,
		}
		if v.ObjectKey != "" {
			resp.FileURL = s.storage.GetFileURL(v.ObjectKey)
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *CustomFieldServiceImpl) UploadImage(ctx context.Context, actor *models.User, taskID, fieldID uint, filename, contentType string, size int64, r io.Reader) (*dto.FieldValueResponse, error) {
	task, field, err := s.loadTaskField(ctx, actor, taskID, fieldID)
	if err != nil {
		return nil, err
	}
	if field.Type != models.FieldImage {
		return nil, apperror.ValidationFailed("field does not take image uploads")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperror.ValidationFailed("only image uploads are allowed")
	}
	if size > s.maxUploadSize {
		return nil, apperror.ValidationFailed("file exceeds the upload size limit")
	}

	key := fmt.Sprintf("fields/%d/%d/%s%s", taskID, fieldID, uuid.New().String(), filepath.Ext(filename))
	if _, err := s.storage.UploadFile(r, key, contentType); err != nil {
		logger.ErrorContext(ctx, "Failed to upload field image", "task_id", taskID, "field_id", fieldID, "error", err)
		return nil, apperror.Persistence("failed to store file", err)
	}

	// replace the previous object, if any
	if old, err := s.fieldRepo.GetValue(ctx, taskID, fieldID); err == nil && old.ObjectKey != "" {
		if err := s.storage.DeleteFile(old.ObjectKey); err != nil {
			logger.WarnContext(ctx, "Failed to delete replaced field image", "object_key", old.ObjectKey, "error", err)
		}
	}

	value := &models.CustomFieldValue{
		TaskID:    taskID,
		FieldID:   fieldID,
		ObjectKey: key,
		MimeType:  contentType,
	}
	if err := s.fieldRepo.SetValue(ctx, value); err != nil {
		logger.ErrorContext(ctx, "Failed to bind uploaded image", "task_id", taskID, "field_id", fieldID, "error", err)
		return nil, err
	}

	event := models.NewFieldValueChangedEvent(taskID, actor.ID, field.Name, "", filename)
	if err := s.taskRepo.Save(ctx, task, event); err != nil {
		logger.WarnContext(ctx, "Failed to record image upload", "task_id", taskID, "error", err)
	}

	logger.InfoContext(ctx, "Field image uploaded", "task_id", taskID, "field_id", fieldID, "size", size)
	return &dto.FieldValueResponse{
		FieldID:  fieldID,
		TaskID:   taskID,
		FileURL:  s.storage.GetFileURL(key),
		MimeType: contentType,
	}, nil
}

// loadTaskField loads the pair, checks the field is visible to the task's
// team, and verifies the actor may edit the task.
func (s *CustomFieldServiceImpl) loadTaskField(ctx context.Context, actor *models.User, taskID, fieldID uint) (*models.Task, *models.CustomField, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if task.IsArchived {
		return nil, nil, apperror.Conflict("archived tasks are read-only")
	}

	field, err := s.fieldRepo.GetByID(ctx, fieldID)
	if err != nil {
		return nil, nil, err
	}
	if !field.IsActive {
		return nil, nil, apperror.ValidationFailed("field is no longer active")
	}
	if field.TeamID != nil && *field.TeamID != task.TeamID {
		return nil, nil, apperror.ValidationFailed("field belongs to another team")
	}

	boardCaps, err := s.permission.ResolveBoard(ctx, actor, task.TeamID)
	if err != nil {
		return nil, nil, err
	}
	if boardCaps.EditAllFields {
		return task, field, nil
	}

	column, err := s.columnRepo.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, nil, err
	}
	colCaps, err := s.permission.ResolveColumn(ctx, actor, column)
	if err != nil {
		return nil, nil, err
	}
	if !colCaps.EditTask {
		return nil, nil, apperror.Forbidden("not allowed to edit tasks in this column")
	}
	return task, field, nil
}
