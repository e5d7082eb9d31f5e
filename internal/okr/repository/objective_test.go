package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/teamflow/teamflow-backend/internal/okr/repository"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suite *testutil.IntegrationSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testutil.NewIntegrationSuite(ctx)
	if err != nil {
		log.Fatalf("failed to create integration suite: %v", err)
	}
	defer suite.Cleanup(ctx)

	os.Exit(m.Run())
}

func TestObjectiveRepository_ListGroupsTasks(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, suite.TruncateAll(ctx))

	objectives := repository.NewObjectiveRepository(suite.DB)
	tasks := repository.NewOKRTaskRepository(suite.DB)

	ownerID := suite.SeedUser(t, ctx, "okr-owner")
	due := time.Now().UTC().Add(30 * 24 * time.Hour)

	first := &repository.Objective{Title: "Grow revenue", OwnerID: ownerID, DueDate: due}
	require.NoError(t, objectives.Create(ctx, first))
	assert.Equal(t, "okr-owner", first.OwnerName)

	second := &repository.Objective{Title: "Ship mobile app", OwnerID: ownerID, DueDate: due}
	require.NoError(t, objectives.Create(ctx, second))

	for _, title := range []string{"close 5 deals", "raise prices"} {
		require.NoError(t, tasks.Create(ctx, &repository.OKRTask{
			ObjectiveID: first.ID,
			Title:       title,
			DueDate:     due,
			AssignedTo:  ownerID,
		}))
	}

	listed, err := objectives.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byID := make(map[string]*repository.Objective, len(listed))
	for _, obj := range listed {
		byID[obj.ID] = obj
	}
	require.Len(t, byID[first.ID].Tasks, 2)
	assert.Empty(t, byID[second.ID].Tasks)

	got, err := objectives.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "okr-owner", got.Tasks[0].AssigneeName)
}

func TestObjectiveRepository_Create_UnknownOwner(t *testing.T) {
	ctx := context.Background()
	objectives := repository.NewObjectiveRepository(suite.DB)

	err := objectives.Create(ctx, &repository.Objective{
		Title:   "orphan objective",
		OwnerID: "daa3b2c1-90f4-4e3a-8c1b-7e5f6a9b0001",
		DueDate: time.Now().UTC(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestOKRTaskRepository_Counts(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, suite.TruncateAll(ctx))

	objectives := repository.NewObjectiveRepository(suite.DB)
	tasks := repository.NewOKRTaskRepository(suite.DB)

	ownerID := suite.SeedUser(t, ctx, "okr-counter")
	obj := &repository.Objective{
		Title:   "Quarterly targets",
		OwnerID: ownerID,
		DueDate: time.Now().UTC().Add(90 * 24 * time.Hour),
	}
	require.NoError(t, objectives.Create(ctx, obj))

	past := time.Now().UTC().Add(-48 * time.Hour)
	future := time.Now().UTC().Add(48 * time.Hour)

	require.NoError(t, tasks.Create(ctx, &repository.OKRTask{
		ObjectiveID: obj.ID, Title: "done on time", DueDate: past, AssignedTo: ownerID, Completed: true,
	}))
	require.NoError(t, tasks.Create(ctx, &repository.OKRTask{
		ObjectiveID: obj.ID, Title: "slipped", DueDate: past, AssignedTo: ownerID,
	}))
	require.NoError(t, tasks.Create(ctx, &repository.OKRTask{
		ObjectiveID: obj.ID, Title: "still in flight", DueDate: future, AssignedTo: ownerID,
	}))

	total, completed, err := tasks.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, completed)

	overdue, err := tasks.CountOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)

	byObjective, err := tasks.ListByObjective(ctx, obj.ID)
	require.NoError(t, err)
	assert.Len(t, byObjective, 3)
}
