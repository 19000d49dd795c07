package serviceimpl_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/pkg/apperror"
)

func TestCreateTaskDefaultsToTodoColumn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task, err := f.task.Create(ctx, f.member, &dto.CreateTaskRequest{
		TeamID: f.team.ID,
		Title:  "write onboarding docs",
	})
	require.NoError(t, err)

	assert.Equal(t, f.todo.ID, task.ColumnID)
	assert.Equal(t, models.StageTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, f.member.ID, task.CreatedBy)
	assert.False(t, task.CurrentColumnEntryAt.IsZero())

	created := f.tasks.eventsOfType(models.ChangeCreated)
	require.Len(t, created, 1)
	assert.Len(t, f.publisher.ofType(ports.EventTaskCreated), 1)
}

func TestCreateTaskForbiddenOutsideTodoForMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.task.Create(ctx, f.member, &dto.CreateTaskRequest{
		TeamID:   f.team.ID,
		ColumnID: &f.doing.ID,
		Title:    "sneak into doing",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestCreateTaskRejectsUnknownPriority(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.task.Create(ctx, f.member, &dto.CreateTaskRequest{
		TeamID:   f.team.ID,
		Title:    "bad priority",
		Priority: "urgent",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))
}

func TestCreateTaskRejectsForeignAssignee(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	outsiderTeam := uint(99)
	outsider := &models.User{ID: uuid.New(), Username: "outsider", Email: "outsider@example.com", Role: models.RoleUser, TeamID: &outsiderTeam, IsActive: true}
	require.NoError(t, f.users.Create(ctx, outsider))

	_, err := f.task.Create(ctx, f.manager, &dto.CreateTaskRequest{
		TeamID:     f.team.ID,
		Title:      "assigned to a stranger",
		AssignedTo: &outsider.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))
}

func TestCreateTaskRequiresRequiredFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	field := &models.CustomField{TeamID: &f.team.ID, Name: "Cost Center", Type: models.FieldText, Required: true, IsActive: true}
	require.NoError(t, f.fields.Create(ctx, field))

	_, err := f.task.Create(ctx, f.member, &dto.CreateTaskRequest{
		TeamID: f.team.ID,
		Title:  "missing the cost center",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))

	task, err := f.task.Create(ctx, f.member, &dto.CreateTaskRequest{
		TeamID:      f.team.ID,
		Title:       "with cost center",
		FieldValues: map[uint]string{field.ID: "CC-1042"},
	})
	require.NoError(t, err)

	stored, err := f.fields.GetValue(ctx, task.ID, field.ID)
	require.NoError(t, err)
	assert.Equal(t, "CC-1042", stored.Value)
}

func TestUpdateTaskRecordsFieldChanges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.doing)

	desc := "now with details"
	updated, err := f.task.Update(ctx, f.member, task.ID, &dto.UpdateTaskRequest{
		Title:       "renamed task",
		Description: &desc,
		Priority:    "high",
	})
	require.NoError(t, err)

	assert.Equal(t, "renamed task", updated.Title)
	assert.Equal(t, models.PriorityHigh, updated.Priority)

	events := f.tasks.eventsOfType(models.ChangeUpdated)
	assert.Len(t, events, 2)
	assert.Len(t, f.tasks.eventsOfType(models.ChangePriorityChanged), 1)
	assert.Len(t, f.publisher.ofType(ports.EventTaskUpdated), 1)
}

func TestUpdateTaskNoopWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.doing)

	_, err := f.task.Update(ctx, f.member, task.ID, &dto.UpdateTaskRequest{})
	require.NoError(t, err)

	assert.Empty(t, f.tasks.eventsOfType(models.ChangeUpdated))
	assert.Empty(t, f.publisher.ofType(ports.EventTaskUpdated))
}

func TestUpdateArchivedTaskRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.complete, func(task *models.Task) {
		task.IsArchived = true
	})

	_, err := f.task.Update(ctx, f.admin, task.ID, &dto.UpdateTaskRequest{Title: "too late"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestUpdateTaskForbiddenInReviewColumnForMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	_, err := f.task.Update(ctx, f.member, task.ID, &dto.UpdateTaskRequest{Title: "editing under review"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	// the manager's board-wide edit right still applies
	_, err = f.task.Update(ctx, f.manager, task.ID, &dto.UpdateTaskRequest{Title: "manager edit"})
	require.NoError(t, err)
}

func TestAssignTaskStampsAssignment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	assigned, err := f.task.Assign(ctx, f.manager, task.ID, &dto.AssignTaskRequest{AssigneeID: f.member.ID})
	require.NoError(t, err)

	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, f.member.ID, *assigned.AssignedTo)
	require.NotNil(t, assigned.AssignedBy)
	assert.Equal(t, f.manager.ID, *assigned.AssignedBy)
	assert.NotNil(t, assigned.AssignedAt)

	assert.Len(t, f.tasks.eventsOfType(models.ChangeAssigned), 1)
	assert.Len(t, f.publisher.ofType(ports.EventTaskAssigned), 1)
}

func TestAssignTaskForbiddenForMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	_, err := f.task.Assign(ctx, f.member, task.ID, &dto.AssignTaskRequest{AssigneeID: f.member.ID})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestGetTaskDeniedOutsideTeam(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	otherTeam := uint(42)
	stranger := &models.User{ID: uuid.New(), Username: "stranger", Email: "stranger@example.com", Role: models.RoleUser, TeamID: &otherTeam, IsActive: true}
	require.NoError(t, f.users.Create(ctx, stranger))

	_, err := f.task.Get(ctx, stranger, task.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestDeleteTaskManagerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	err := f.task.Delete(ctx, f.member, task.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	require.NoError(t, f.task.Delete(ctx, f.manager, task.ID))

	_, err = f.tasks.GetByID(ctx, task.ID)
	require.Error(t, err)
	assert.Len(t, f.publisher.ofType(ports.EventTaskDeleted), 1)
}

func TestMoveDelegatesToTransition(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	moved, err := f.task.Move(ctx, f.member, task.ID, &dto.MoveTaskRequest{ToColumnID: f.doing.ID})
	require.NoError(t, err)

	assert.Equal(t, f.doing.ID, moved.ColumnID)
	assert.WithinDuration(t, time.Now().UTC(), moved.CurrentColumnEntryAt, 5*time.Second)
}
