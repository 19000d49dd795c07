package serviceimpl

import (
	"context"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type BoardServiceImpl struct {
	columnRepo repositories.ColumnRepository
	taskRepo   repositories.TaskRepository
	teamRepo   repositories.TeamRepository
	permission services.PermissionService
	publisher  ports.BoardEventPublisher
}

func NewBoardService(
	columnRepo repositories.ColumnRepository,
	taskRepo repositories.TaskRepository,
	teamRepo repositories.TeamRepository,
	permission services.PermissionService,
	publisher ports.BoardEventPublisher,
) services.BoardService {
	return &BoardServiceImpl{
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
		teamRepo:   teamRepo,
		permission: permission,
		publisher:  publisher,
	}
}

func (s *BoardServiceImpl) GetBoard(ctx context.Context, actor *models.User, teamID uint) (*dto.BoardResponse, error) {
	if !actor.BelongsToTeam(teamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	columns, err := s.columnRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListBoard(ctx, teamID)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[uint][]dto.TaskResponse, len(columns))
	for _, task := range tasks {
		byColumn[task.ColumnID] = append(byColumn[task.ColumnID], dto.ToTaskResponse(task))
	}

	resp := &dto.BoardResponse{Team: dto.ToTeamResponse(team)}
	for _, col := range columns {
		colTasks := byColumn[col.ID]
		if colTasks == nil {
			colTasks = []dto.TaskResponse{}
		}
		resp.Columns = append(resp.Columns, dto.BoardColumnResponse{
			Column: dto.ToColumnResponse(col),
			Tasks:  colTasks,
		})
	}
	return resp, nil
}

func (s *BoardServiceImpl) CreateColumn(ctx context.Context, actor *models.User, teamID uint, req *dto.CreateColumnRequest) (*models.BoardColumn, error) {
	caps, err := s.permission.ResolveBoard(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if !caps.AddColumn {
		return nil, apperror.Forbidden("not allowed to add columns to this board")
	}

	stage := models.Stage(req.Stage)
	if !stage.Valid() {
		return nil, apperror.ValidationFailed("unknown stage")
	}

	columns, err := s.columnRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	column := &models.BoardColumn{
		TeamID:   teamID,
		Name:     req.Name,
		Position: len(columns),
		Stage:    stage,
	}
	if err := s.columnRepo.Create(ctx, column); err != nil {
		logger.ErrorContext(ctx, "Failed to create column", "team_id", teamID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Column created", "column_id", column.ID, "team_id", teamID, "stage", stage)
	s.publishBoardChanged(ctx, actor, teamID)
	return column, nil
}

func (s *BoardServiceImpl) RenameColumn(ctx context.Context, actor *models.User, columnID uint, req *dto.UpdateColumnRequest) (*models.BoardColumn, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	caps, err := s.permission.ResolveBoard(ctx, actor, column.TeamID)
	if err != nil {
		return nil, err
	}
	if !caps.RenameColumn {
		return nil, apperror.Forbidden("not allowed to rename columns on this board")
	}

	column.Name = req.Name
	if err := s.columnRepo.Update(ctx, column); err != nil {
		logger.ErrorContext(ctx, "Failed to rename column", "column_id", columnID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Column renamed", "column_id", columnID, "name", req.Name)
	s.publishBoardChanged(ctx, actor, column.TeamID)
	return column, nil
}

func (s *BoardServiceImpl) ReorderColumns(ctx context.Context, actor *models.User, teamID uint, req *dto.ReorderColumnsRequest) ([]*models.BoardColumn, error) {
	caps, err := s.permission.ResolveBoard(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if !caps.ReorderColumn {
		return nil, apperror.Forbidden("not allowed to reorder columns on this board")
	}

	columns, err := s.columnRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	// the request must list exactly the team's columns, nothing more or less
	if len(req.ColumnIDs) != len(columns) {
		return nil, apperror.ValidationFailed("reorder must include every column of the board exactly once")
	}
	known := make(map[uint]bool, len(columns))
	for _, c := range columns {
		known[c.ID] = true
	}
	seen := make(map[uint]bool, len(req.ColumnIDs))
	for _, id := range req.ColumnIDs {
		if !known[id] || seen[id] {
			return nil, apperror.ValidationFailed("reorder must include every column of the board exactly once")
		}
		seen[id] = true
	}

	if err := s.columnRepo.Reorder(ctx, teamID, req.ColumnIDs); err != nil {
		logger.ErrorContext(ctx, "Failed to reorder columns", "team_id", teamID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Columns reordered", "team_id", teamID, "count", len(req.ColumnIDs))
	s.publishBoardChanged(ctx, actor, teamID)
	return s.columnRepo.ListByTeam(ctx, teamID)
}

func (s *BoardServiceImpl) DeleteColumn(ctx context.Context, actor *models.User, columnID uint) error {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	caps, err := s.permission.ResolveBoard(ctx, actor, column.TeamID)
	if err != nil {
		return err
	}
	if !caps.DeleteColumn {
		return apperror.Forbidden("not allowed to delete columns on this board")
	}

	count, err := s.columnRepo.CountTasks(ctx, columnID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflict("column still has tasks")
	}

	// the workflow needs at least one column per stage
	columns, err := s.columnRepo.ListByTeam(ctx, column.TeamID)
	if err != nil {
		return err
	}
	sameStage := 0
	for _, c := range columns {
		if c.Stage == column.Stage {
			sameStage++
		}
	}
	if sameStage <= 1 {
		return apperror.Conflict("cannot delete the board's only " + string(column.Stage) + " column")
	}

	if err := s.columnRepo.Delete(ctx, columnID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete column", "column_id", columnID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Column deleted", "column_id", columnID, "team_id", column.TeamID)
	s.publishBoardChanged(ctx, actor, column.TeamID)
	return nil
}

func (s *BoardServiceImpl) publishBoardChanged(ctx context.Context, actor *models.User, teamID uint) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping board event, team lookup failed", "team_id", teamID, "error", err)
		return
	}
	event := &ports.BoardEvent{
		Type:     ports.EventBoardChanged,
		TeamID:   teamID,
		TeamSlug: team.Slug,
		Actor:    actor.Username,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish board event", "team_id", teamID, "error", err)
	}
}
