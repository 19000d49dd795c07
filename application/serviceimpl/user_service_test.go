package serviceimpl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/application/serviceimpl"
	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperror"
)

const testJWTSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	users := serviceimpl.NewUserService(f.users, testJWTSecret)

	resp, err := users.Register(ctx, &dto.RegisterRequest{
		Email:    "dev@example.com",
		Username: "dev",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user", resp.User.Role)

	stored, err := f.users.GetByEmail(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", stored.Password, "password must be hashed")

	login, err := users.Login(ctx, &dto.LoginRequest{Email: "dev@example.com", Password: "correct horse battery"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = users.Login(ctx, &dto.LoginRequest{Email: "dev@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	users := serviceimpl.NewUserService(f.users, testJWTSecret)

	_, err := users.Register(ctx, &dto.RegisterRequest{
		Email:    f.member.Email,
		Username: "someone-new",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = users.Register(ctx, &dto.RegisterRequest{
		Email:    "new@example.com",
		Username: f.member.Username,
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	users := serviceimpl.NewUserService(f.users, testJWTSecret)

	_, err := users.Register(ctx, &dto.RegisterRequest{
		Email:    "gone@example.com",
		Username: "gone",
		Password: "password123",
	})
	require.NoError(t, err)

	stored, err := f.users.GetByEmail(ctx, "gone@example.com")
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, f.users.Update(ctx, stored))

	_, err = users.Login(ctx, &dto.LoginRequest{Email: "gone@example.com", Password: "password123"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestListByTeamMembershipRequired(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	users := serviceimpl.NewUserService(f.users, testJWTSecret)

	listed, err := users.ListByTeam(ctx, f.member, f.team.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2) // manager and member carry the fixture team id

	_, err = users.ListByTeam(ctx, f.member, f.team.ID+1)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestPurgeUserAdminOnlyAndNeverSelf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	users := serviceimpl.NewUserService(f.users, testJWTSecret)

	err := users.Purge(ctx, f.manager, f.member.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	err = users.Purge(ctx, f.admin, f.admin.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	require.NoError(t, users.Purge(ctx, f.admin, f.member.ID))
	_, err = f.users.GetByID(ctx, f.member.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestPurgedActorPreservesHistoryRows(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	_, err := f.transition.Move(ctx, f.member, task.ID, f.doing.ID)
	require.NoError(t, err)

	users := serviceimpl.NewUserService(f.users, testJWTSecret)
	require.NoError(t, users.Purge(ctx, f.admin, f.member.ID))

	events := f.tasks.eventsOfType(models.ChangeColumnMoved)
	require.Len(t, events, 1)
	assert.NotNil(t, events[0].FromColumnID)
}
