package serviceimpl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperror"
)

func TestGenerateAllSnapshotsBoardState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedTask(f.todo)
	f.seedTask(f.doing)
	f.seedTask(f.doing)
	f.seedTask(f.reviewCo)
	f.seedTask(f.complete, func(task *models.Task) {
		task.IsArchived = true
	})
	overdue := time.Now().UTC().Add(-48 * time.Hour)
	f.seedTask(f.doing, func(task *models.Task) {
		task.DueDate = &overdue
	})

	require.NoError(t, f.report.GenerateAll(ctx))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	reports, err := f.reports.ListByTeam(ctx, f.team.ID, today, today)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	snap := reports[0]
	assert.Equal(t, int64(1), snap.TodoCount)
	assert.Equal(t, int64(3), snap.DoingCount)
	assert.Equal(t, int64(1), snap.ReviewCount)
	assert.Equal(t, int64(0), snap.CompleteCount)
	assert.Equal(t, int64(1), snap.ArchivedCount)
	assert.Equal(t, int64(1), snap.OverdueCount)
}

func TestGenerateAllReplacesSameDayRun(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedTask(f.todo)
	require.NoError(t, f.report.GenerateAll(ctx))

	f.seedTask(f.todo)
	require.NoError(t, f.report.GenerateAll(ctx))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	reports, err := f.reports.ListByTeam(ctx, f.team.ID, today, today)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, int64(2), reports[0].TodoCount)
}

func TestGenerateAllSkipsInactiveTeams(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.team.IsActive = false
	require.NoError(t, f.teams.Update(ctx, f.team))

	require.NoError(t, f.report.GenerateAll(ctx))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	reports, err := f.reports.ListByTeam(ctx, f.team.ID, today, today)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestListReportsMembershipRequired(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.report.GenerateAll(ctx))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	reports, err := f.report.ListByTeam(ctx, f.member, f.team.ID, today.AddDate(0, 0, -7), today)
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	_, err = f.report.ListByTeam(ctx, f.member, f.team.ID+1, today.AddDate(0, 0, -7), today)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}
