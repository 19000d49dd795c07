package serviceimpl

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type PermissionServiceImpl struct {
	permRepo   repositories.PermissionRepository
	userRepo   repositories.UserRepository
	columnRepo repositories.ColumnRepository
}

func NewPermissionService(
	permRepo repositories.PermissionRepository,
	userRepo repositories.UserRepository,
	columnRepo repositories.ColumnRepository,
) services.PermissionService {
	return &PermissionServiceImpl{
		permRepo:   permRepo,
		userRepo:   userRepo,
		columnRepo: columnRepo,
	}
}

// roleBoardDefaults is the capability set a role carries before any explicit
// override row. Admins get everything everywhere; managers get everything on
// their own team; sub-managers the same minus column deletion and imports;
// plain members get nothing at board level.
func roleBoardDefaults(actor *models.User, teamID uint) services.Capabilities {
	if actor.Role == models.RoleAdmin {
		return services.Capabilities{
			ManageBoard: true, AddColumn: true, RenameColumn: true,
			ReorderColumn: true, DeleteColumn: true, EditAllFields: true,
			DeleteTask: true, ReviewTask: true, ImportExcel: true, AssignTask: true,
		}
	}
	if !actor.ManagesTeam(teamID) {
		return services.Capabilities{}
	}
	caps := services.Capabilities{
		ManageBoard: true, AddColumn: true, RenameColumn: true,
		ReorderColumn: true, DeleteColumn: true, EditAllFields: true,
		DeleteTask: true, ReviewTask: true, ImportExcel: true, AssignTask: true,
	}
	if actor.Role == models.RoleSubManager {
		caps.DeleteColumn = false
		caps.ImportExcel = false
	}
	return caps
}

// roleColumnDefaults: team managers can do everything in their columns; plain
// members can add tasks in todo columns, edit in todo and doing columns, and
// always view history of their team's tasks.
func roleColumnDefaults(actor *models.User, column *models.BoardColumn) services.ColumnCapabilities {
	if actor.ManagesTeam(column.TeamID) {
		return services.ColumnCapabilities{
			AddTask: true, ClearTasks: true, AssignTask: true,
			EditTask: true, DeleteTask: true, ViewHistory: true,
		}
	}
	if !actor.BelongsToTeam(column.TeamID) {
		return services.ColumnCapabilities{}
	}
	return services.ColumnCapabilities{
		AddTask:     column.Stage == models.StageTodo,
		EditTask:    column.Stage == models.StageTodo || column.Stage == models.StageDoing,
		ViewHistory: true,
	}
}

func (s *PermissionServiceImpl) ResolveBoard(ctx context.Context, actor *models.User, teamID uint) (*services.Capabilities, error) {
	caps := roleBoardDefaults(actor, teamID)

	override, err := s.permRepo.GetBoardPermission(ctx, actor.ID, teamID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return &caps, nil
		}
		return nil, err
	}

	applyFlag(&caps.ManageBoard, override.CanManageBoard)
	applyFlag(&caps.AddColumn, override.CanAddColumn)
	applyFlag(&caps.RenameColumn, override.CanRenameColumn)
	applyFlag(&caps.ReorderColumn, override.CanReorderColumn)
	applyFlag(&caps.DeleteColumn, override.CanDeleteColumn)
	applyFlag(&caps.EditAllFields, override.CanEditAllFields)
	applyFlag(&caps.DeleteTask, override.CanDeleteTask)
	applyFlag(&caps.ReviewTask, override.CanReviewTask)
	applyFlag(&caps.ImportExcel, override.CanImportExcel)
	applyFlag(&caps.AssignTask, override.CanAssignTask)

	return &caps, nil
}

func (s *PermissionServiceImpl) ResolveColumn(ctx context.Context, actor *models.User, column *models.BoardColumn) (*services.ColumnCapabilities, error) {
	caps := roleColumnDefaults(actor, column)

	override, err := s.permRepo.GetColumnPermission(ctx, actor.ID, column.ID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return &caps, nil
		}
		return nil, err
	}

	applyFlag(&caps.AddTask, override.CanAddTask)
	applyFlag(&caps.ClearTasks, override.CanClearTasks)
	applyFlag(&caps.AssignTask, override.CanAssignTask)
	applyFlag(&caps.EditTask, override.CanEditTask)
	applyFlag(&caps.DeleteTask, override.CanDeleteTask)
	applyFlag(&caps.ViewHistory, override.CanViewHistory)

	return &caps, nil
}

func applyFlag(target *bool, override *bool) {
	if override != nil {
		*target = *override
	}
}

func (s *PermissionServiceImpl) CanTransition(ctx context.Context, actor *models.User, source, dest *models.BoardColumn) (bool, error) {
	// cross-team moves are never allowed, for anyone
	if source.TeamID != dest.TeamID {
		return false, nil
	}

	rule, err := s.permRepo.GetTransitionRule(ctx, actor.ID, source.ID, dest.ID)
	if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return false, err
	}
	if rule != nil {
		return rule.Allowed, nil
	}

	if actor.Role == models.RoleAdmin {
		return true, nil
	}
	if !actor.BelongsToTeam(source.TeamID) {
		return false, nil
	}

	srcOrder := source.Stage.Order()
	dstOrder := dest.Stage.Order()

	if actor.ManagesTeam(source.TeamID) {
		// managers move forward one stage or sideways within a stage
		return dstOrder == srcOrder+1 || dstOrder == srcOrder, nil
	}

	// plain members: pick up work and submit it for review
	switch {
	case source.Stage == models.StageTodo && dest.Stage == models.StageDoing:
		return true, nil
	case source.Stage == models.StageDoing && dest.Stage == models.StageReview:
		return true, nil
	}
	return false, nil
}

func (s *PermissionServiceImpl) GetTeamPermissions(ctx context.Context, actorID uuid.UUID, teamID uint) (*dto.TeamPermissionsResponse, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.ManagesTeam(teamID) {
		return nil, apperror.Forbidden("not allowed to view team permissions")
	}

	users, err := s.userRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	rules, err := s.permRepo.ListTransitionRules(ctx, teamID)
	if err != nil {
		return nil, err
	}
	columnPerms, err := s.permRepo.ListColumnPermissions(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resp := &dto.TeamPermissionsResponse{TeamID: teamID}
	for _, u := range users {
		caps, err := s.ResolveBoard(ctx, u, teamID)
		if err != nil {
			return nil, err
		}

		entry := dto.UserCapabilitiesResponse{
			User:             dto.ToUserResponse(u),
			CanManageBoard:   caps.ManageBoard,
			CanAddColumn:     caps.AddColumn,
			CanRenameColumn:  caps.RenameColumn,
			CanReorderColumn: caps.ReorderColumn,
			CanDeleteColumn:  caps.DeleteColumn,
			CanEditAllFields: caps.EditAllFields,
			CanDeleteTask:    caps.DeleteTask,
			CanReviewTask:    caps.ReviewTask,
			CanImportExcel:   caps.ImportExcel,
			CanAssignTask:    caps.AssignTask,
		}

		for _, cp := range columnPerms {
			if cp.UserID != u.ID {
				continue
			}
			entry.ColumnPermissions = append(entry.ColumnPermissions, dto.ColumnPermissionDTO{
				ColumnID:       cp.ColumnID,
				CanAddTask:     cp.CanAddTask,
				CanClearTasks:  cp.CanClearTasks,
				CanAssignTask:  cp.CanAssignTask,
				CanEditTask:    cp.CanEditTask,
				CanDeleteTask:  cp.CanDeleteTask,
				CanViewHistory: cp.CanViewHistory,
			})
		}

		matrix := make(map[uint][]uint)
		for _, r := range rules {
			if r.UserID != u.ID || !r.Allowed {
				continue
			}
			matrix[r.SourceColumn] = append(matrix[r.SourceColumn], r.DestColumn)
		}
		if len(matrix) > 0 {
			entry.TransitionMatrix = matrix
		}

		resp.Users = append(resp.Users, entry)
	}
	return resp, nil
}

func (s *PermissionServiceImpl) UpdatePermissions(ctx context.Context, actorID uuid.UUID, teamID uint, req *dto.UpdateBoardPermissionRequest) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	caps, err := s.ResolveBoard(ctx, actor, teamID)
	if err != nil {
		return err
	}
	if !caps.ManageBoard {
		logger.WarnContext(ctx, "Permission update denied", "actor_id", actorID, "team_id", teamID)
		return apperror.Forbidden("not allowed to manage this board")
	}

	target, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !target.BelongsToTeam(teamID) {
		return apperror.ValidationFailed("user does not belong to this team")
	}

	// every referenced column must belong to the team
	columns, err := s.columnRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	teamColumns := make(map[uint]bool, len(columns))
	for _, c := range columns {
		teamColumns[c.ID] = true
	}
	for _, r := range req.TransitionRules {
		if !teamColumns[r.SourceColumnID] || !teamColumns[r.DestColumnID] {
			return apperror.ValidationFailed("transition rule references a column outside the team")
		}
		if r.SourceColumnID == r.DestColumnID {
			return apperror.ValidationFailed("transition rule source and destination must differ")
		}
	}
	for _, cp := range req.ColumnPermissions {
		if !teamColumns[cp.ColumnID] {
			return apperror.ValidationFailed("column permission references a column outside the team")
		}
	}

	boardPerm := &models.BoardPermission{
		UserID:           req.UserID,
		TeamID:           teamID,
		CanManageBoard:   req.CanManageBoard,
		CanAddColumn:     req.CanAddColumn,
		CanRenameColumn:  req.CanRenameColumn,
		CanReorderColumn: req.CanReorderColumn,
		CanDeleteColumn:  req.CanDeleteColumn,
		CanEditAllFields: req.CanEditAllFields,
		CanDeleteTask:    req.CanDeleteTask,
		CanReviewTask:    req.CanReviewTask,
		CanImportExcel:   req.CanImportExcel,
		CanAssignTask:    req.CanAssignTask,
	}
	if err := s.permRepo.UpsertBoardPermission(ctx, boardPerm); err != nil {
		logger.ErrorContext(ctx, "Failed to upsert board permission", "user_id", req.UserID, "team_id", teamID, "error", err)
		return err
	}

	for _, cp := range req.ColumnPermissions {
		colPerm := &models.ColumnPermission{
			UserID:         req.UserID,
			ColumnID:       cp.ColumnID,
			CanAddTask:     cp.CanAddTask,
			CanClearTasks:  cp.CanClearTasks,
			CanAssignTask:  cp.CanAssignTask,
			CanEditTask:    cp.CanEditTask,
			CanDeleteTask:  cp.CanDeleteTask,
			CanViewHistory: cp.CanViewHistory,
		}
		if err := s.permRepo.UpsertColumnPermission(ctx, colPerm); err != nil {
			logger.ErrorContext(ctx, "Failed to upsert column permission", "user_id", req.UserID, "column_id", cp.ColumnID, "error", err)
			return err
		}
	}

	rules := make([]*models.TransitionRule, 0, len(req.TransitionRules))
	for _, r := range req.TransitionRules {
		rules = append(rules, &models.TransitionRule{
			UserID:       req.UserID,
			TeamID:       teamID,
			SourceColumn: r.SourceColumnID,
			DestColumn:   r.DestColumnID,
			Allowed:      r.Allowed,
		})
	}
	if err := s.permRepo.ReplaceTransitionRules(ctx, req.UserID, teamID, rules); err != nil {
		logger.ErrorContext(ctx, "Failed to replace transition rules", "user_id", req.UserID, "team_id", teamID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Permissions updated", "actor_id", actorID, "user_id", req.UserID, "team_id", teamID, "rules", len(rules))
	return nil
}
