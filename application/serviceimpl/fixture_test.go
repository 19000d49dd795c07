package serviceimpl_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard-api/application/serviceimpl"
	"taskboard-api/domain/models"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/config"
)

// fixture wires every service against the in-memory fakes with one team,
// its four default columns, and one user per role.
type fixture struct {
	tasks     *fakeTaskRepo
	columns   *fakeColumnRepo
	teams     *fakeTeamRepo
	users     *fakeUserRepo
	perms     *fakePermRepo
	moves     *fakeMoveRepo
	fields    *fakeFieldRepo
	reports   *fakeReportRepo
	publisher *fakePublisher
	cache     *fakeCache
	storage   *fakeStorage

	permission  services.PermissionService
	transition  services.TransitionService
	review      services.ReviewService
	moveRequest services.MoveRequestService
	archive     services.ArchiveService
	board       services.BoardService
	history     services.HistoryService
	field       services.CustomFieldService
	task        services.TaskService
	teamSvc     services.TeamService
	report      services.ReportService

	team     *models.Team
	todo     *models.BoardColumn
	doing    *models.BoardColumn
	reviewCo *models.BoardColumn
	complete *models.BoardColumn

	admin   *models.User
	manager *models.User
	member  *models.User
}

func newFixture() *fixture {
	return newFixtureWithReview(config.ReviewConfig{})
}

func newFixtureWithReview(reviewCfg config.ReviewConfig) *fixture {
	f := &fixture{}
	f.tasks = newFakeTaskRepo()
	f.columns = newFakeColumnRepo(f.tasks)
	f.teams = newFakeTeamRepo()
	f.users = newFakeUserRepo()
	f.perms = newFakePermRepo()
	f.moves = newFakeMoveRepo()
	f.fields = newFakeFieldRepo()
	f.reports = newFakeReportRepo()
	f.publisher = &fakePublisher{}
	f.cache = newFakeCache()
	f.storage = newFakeStorage()

	ctx := context.Background()

	f.team = &models.Team{Name: "Platform", Slug: "platform", IsActive: true}
	_ = f.teams.Create(ctx, f.team)

	f.todo = &models.BoardColumn{TeamID: f.team.ID, Name: "To Do", Position: 0, Stage: models.StageTodo}
	f.doing = &models.BoardColumn{TeamID: f.team.ID, Name: "Doing", Position: 1, Stage: models.StageDoing}
	f.reviewCo = &models.BoardColumn{TeamID: f.team.ID, Name: "Review", Position: 2, Stage: models.StageReview}
	f.complete = &models.BoardColumn{TeamID: f.team.ID, Name: "Complete", Position: 3, Stage: models.StageComplete}
	for _, c := range []*models.BoardColumn{f.todo, f.doing, f.reviewCo, f.complete} {
		_ = f.columns.Create(ctx, c)
	}

	teamID := f.team.ID
	f.admin = &models.User{ID: uuid.New(), Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	f.manager = &models.User{ID: uuid.New(), Username: "manager", Email: "manager@example.com", Role: models.RoleManager, TeamID: &teamID, IsActive: true}
	f.member = &models.User{ID: uuid.New(), Username: "member", Email: "member@example.com", Role: models.RoleUser, TeamID: &teamID, IsActive: true}
	for _, u := range []*models.User{f.admin, f.manager, f.member} {
		_ = f.users.Create(ctx, u)
	}

	f.permission = serviceimpl.NewPermissionService(f.perms, f.users, f.columns)
	f.transition = serviceimpl.NewTransitionService(f.tasks, f.columns, f.teams, f.permission, f.publisher)
	f.review = serviceimpl.NewReviewService(f.tasks, f.columns, f.teams, f.permission, f.transition, f.cache, f.publisher, reviewCfg)
	f.moveRequest = serviceimpl.NewMoveRequestService(f.moves, f.tasks, f.columns, f.teams, f.permission, f.transition, f.publisher)
	f.archive = serviceimpl.NewArchiveService(f.tasks, f.teams, f.permission, f.publisher)
	f.board = serviceimpl.NewBoardService(f.columns, f.tasks, f.teams, f.permission, f.publisher)
	f.history = serviceimpl.NewHistoryService(&fakeHistoryRepo{tasks: f.tasks}, f.tasks, f.columns, f.permission)
	f.field = serviceimpl.NewCustomFieldService(f.fields, f.tasks, f.columns, f.permission, f.storage, 1<<20)
	f.task = serviceimpl.NewTaskService(f.tasks, f.columns, f.teams, f.users, f.fields, f.permission, f.transition, f.field, f.publisher)
	f.teamSvc = serviceimpl.NewTeamService(f.teams, f.columns)
	f.report = serviceimpl.NewReportService(f.teams, f.tasks, f.reports)

	return f
}

// seedTask drops a task directly into the store, bypassing the services
func (f *fixture) seedTask(column *models.BoardColumn, mutate ...func(*models.Task)) *models.Task {
	task := &models.Task{
		TeamID:               f.team.ID,
		ColumnID:             column.ID,
		Title:                "seeded task",
		Status:               column.Stage,
		Priority:             models.PriorityMedium,
		CreatedBy:            f.member.ID,
		ReviewStatus:         models.ReviewNone,
		CurrentColumnEntryAt: time.Now().UTC().Add(-time.Hour),
	}
	for _, m := range mutate {
		m(task)
	}
	_ = f.tasks.Create(context.Background(), task, models.NewCreatedEvent(0, f.member.ID, task.Title))
	return task
}
