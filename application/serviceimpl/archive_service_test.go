package serviceimpl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperror"
)

func TestArchiveCompletedOnlyTakesEligibleTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	eligible := f.seedTask(f.complete, func(task *models.Task) {
		task.ReviewStatus = models.ReviewPassed
	})
	unreviewed := f.seedTask(f.complete)
	inProgress := f.seedTask(f.doing)
	alreadyArchived := f.seedTask(f.complete, func(task *models.Task) {
		task.ReviewStatus = models.ReviewPassed
		task.IsArchived = true
	})

	count, err := f.archive.ArchiveCompleted(ctx, f.manager, f.team.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, _ := f.tasks.GetByID(ctx, eligible.ID)
	assert.True(t, stored.IsArchived)
	assert.NotNil(t, stored.ArchivedAt)

	for _, id := range []uint{unreviewed.ID, inProgress.ID} {
		task, _ := f.tasks.GetByID(ctx, id)
		assert.False(t, task.IsArchived)
	}

	// one archive event, for the eligible task only
	events := f.tasks.eventsOfType(models.ChangeArchived)
	require.Len(t, events, 1)
	assert.Equal(t, eligible.ID, events[0].TaskID)

	previous, _ := f.tasks.GetByID(ctx, alreadyArchived.ID)
	assert.True(t, previous.IsArchived)
}

func TestArchiveCompletedEmptyBoardIsNoop(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	count, err := f.archive.ArchiveCompleted(ctx, f.manager, f.team.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, f.tasks.eventsOfType(models.ChangeArchived))
}

func TestArchiveCompletedRequiresManageBoard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.archive.ArchiveCompleted(ctx, f.member, f.team.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestListArchivedSeparatesPartitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedTask(f.doing)
	archived := f.seedTask(f.complete, func(task *models.Task) {
		task.ReviewStatus = models.ReviewPassed
		task.IsArchived = true
	})

	list, err := f.archive.ListArchived(ctx, f.member, f.team.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, archived.ID, list[0].ID)

	active, err := f.tasks.ListBoard(ctx, f.team.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.NotEqual(t, archived.ID, active[0].ID)
}

func TestArchiveSingleRequiresEligibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inProgress := f.seedTask(f.doing)
	_, err := f.archive.ArchiveSingle(ctx, f.manager, inProgress.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))

	eligible := f.seedTask(f.complete, func(task *models.Task) {
		task.ReviewStatus = models.ReviewPassed
	})
	archived, err := f.archive.ArchiveSingle(ctx, f.manager, eligible.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	assert.NotNil(t, archived.ArchivedAt)

	_, err = f.archive.ArchiveSingle(ctx, f.manager, eligible.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestPurgeArchivedAdminOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	archived := f.seedTask(f.complete, func(task *models.Task) {
		task.ReviewStatus = models.ReviewPassed
		task.IsArchived = true
	})

	err := f.archive.PurgeArchived(ctx, f.manager, archived.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	active := f.seedTask(f.doing)
	err = f.archive.PurgeArchived(ctx, f.admin, active.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	require.NoError(t, f.archive.PurgeArchived(ctx, f.admin, archived.ID))
	_, err = f.tasks.GetByID(ctx, archived.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestArchivedTaskIsTerminal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	archived := f.seedTask(f.complete, func(task *models.Task) {
		task.ReviewStatus = models.ReviewPassed
		task.IsArchived = true
	})

	_, err := f.transition.Move(ctx, f.admin, archived.ID, f.todo.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}
