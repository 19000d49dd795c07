package serviceimpl

import (
	"context"

	"github.com/gosimple/slug"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
)

type TeamServiceImpl struct {
	teamRepo   repositories.TeamRepository
	columnRepo repositories.ColumnRepository
}

func NewTeamService(teamRepo repositories.TeamRepository, columnRepo repositories.ColumnRepository) services.TeamService {
	return &TeamServiceImpl{
		teamRepo:   teamRepo,
		columnRepo: columnRepo,
	}
}

// defaultColumns seeds every new board with one column per stage
var defaultColumns = []struct {
	Name  string
	Stage models.Stage
}{
	{"To Do", models.StageTodo},
	{"Doing", models.StageDoing},
	{"Review", models.StageReview},
	{"Complete", models.StageComplete},
}

func (s *TeamServiceImpl) Create(ctx context.Context, actor *models.User, req *dto.CreateTeamRequest) (*models.Team, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("only admins can create teams")
	}

	teamSlug := slug.Make(req.Name)
	existing, err := s.teamRepo.GetBySlug(ctx, teamSlug)
	if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("a team with this name already exists")
	}

	team := &models.Team{
		Name:     req.Name,
		Slug:     teamSlug,
		IsActive: true,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		logger.ErrorContext(ctx, "Failed to create team", "name", req.Name, "error", err)
		return nil, err
	}

	for i, def := range defaultColumns {
		column := &models.BoardColumn{
			TeamID:   team.ID,
			Name:     def.Name,
			Position: i,
			Stage:    def.Stage,
		}
		if err := s.columnRepo.Create(ctx, column); err != nil {
			logger.ErrorContext(ctx, "Failed to seed board column", "team_id", team.ID, "stage", def.Stage, "error", err)
			return nil, err
		}
	}

	logger.InfoContext(ctx, "Team created", "team_id", team.ID, "slug", team.Slug)
	return team, nil
}

func (s *TeamServiceImpl) Get(ctx context.Context, actor *models.User, teamID uint) (*models.Team, error) {
	if !actor.BelongsToTeam(teamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}
	return s.teamRepo.GetByID(ctx, teamID)
}

func (s *TeamServiceImpl) List(ctx context.Context, actor *models.User) ([]*models.Team, error) {
	if actor.IsAdmin() {
		return s.teamRepo.List(ctx)
	}
	if actor.TeamID == nil {
		return []*models.Team{}, nil
	}
	team, err := s.teamRepo.GetByID(ctx, *actor.TeamID)
	if err != nil {
		return nil, err
	}
	return []*models.Team{team}, nil
}

// Update renames the team. The slug stays stable because it doubles as the
// board room name for connected clients.
func (s *TeamServiceImpl) Update(ctx context.Context, actor *models.User, teamID uint, req *dto.UpdateTeamRequest) (*models.Team, error) {
	if !actor.ManagesTeam(teamID) {
		return nil, apperror.Forbidden("not allowed to manage this team")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	team.Name = req.Name
	if err := s.teamRepo.Update(ctx, team); err != nil {
		logger.ErrorContext(ctx, "Failed to update team", "team_id", teamID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Team updated", "team_id", teamID)
	return team, nil
}
