package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/internal/workspace/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTask(t *testing.T, ctx context.Context, repo *repository.TaskRepository, title, assignee string, completed bool) *repository.Task {
	t.Helper()
	task := &repository.Task{
		Title:      title,
		DueDate:    time.Now().UTC().Add(72 * time.Hour),
		AssignedTo: assignee,
		Completed:  completed,
	}
	require.NoError(t, repo.Create(ctx, task))
	return task
}

// addToDepartment creates a role inside the department and enrolls the user.
func addToDepartment(t *testing.T, ctx context.Context, departmentID, userID string) {
	t.Helper()
	roleID := uuid.New().String()
	_, err := suite.DB.ExecContext(ctx,
		`INSERT INTO roles (id, name, description, department_id) VALUES ($1, $2, '', $3)`,
		roleID, "member-"+roleID[:8], departmentID)
	require.NoError(t, err)
	_, err = suite.DB.ExecContext(ctx,
		`INSERT INTO role_members (role_id, user_id) VALUES ($1, $2)`, roleID, userID)
	require.NoError(t, err)
}

func TestTaskRepository_ListByAssignee(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTaskRepository(suite.DB)

	mineID := suite.SeedUser(t, ctx, "task-owner")
	otherID := suite.SeedUser(t, ctx, "task-other")

	seedTask(t, ctx, repo, "mine one", mineID, false)
	seedTask(t, ctx, repo, "mine two", mineID, true)
	seedTask(t, ctx, repo, "not mine", otherID, false)

	tasks, err := repo.ListByAssignee(ctx, mineID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, mineID, task.AssignedTo)
		assert.Equal(t, "task-owner", task.AssigneeName)
	}
}

func TestTaskRepository_TeamTasks(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTaskRepository(suite.DB)

	deptID := suite.SeedDepartment(t, ctx, "Engineering Team Tasks")
	managerID := suite.SeedUser(t, ctx, "team-manager")
	reportID := suite.SeedUser(t, ctx, "team-report")
	outsiderID := suite.SeedUser(t, ctx, "team-outsider")

	addToDepartment(t, ctx, deptID, managerID)
	addToDepartment(t, ctx, deptID, reportID)

	seedTask(t, ctx, repo, "report open", reportID, false)
	seedTask(t, ctx, repo, "report done", reportID, true)
	seedTask(t, ctx, repo, "manager open", managerID, false)
	seedTask(t, ctx, repo, "outsider task", outsiderID, false)

	tasks, err := repo.ListTeamTasks(ctx, managerID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.NotEqual(t, outsiderID, task.AssignedTo)
	}

	open, completed, err := repo.CountTeamTasks(ctx, managerID)
	require.NoError(t, err)
	assert.Equal(t, 2, open)
	assert.Equal(t, 1, completed)
}

func TestUserLookup_TeamMembers(t *testing.T) {
	ctx := context.Background()
	lookup := repository.NewUserLookup(suite.DB)

	deptID := suite.SeedDepartment(t, ctx, "Sales Team Members")
	leadID := suite.SeedUser(t, ctx, "sales-lead")
	repID := suite.SeedUser(t, ctx, "sales-rep")
	suite.SeedUser(t, ctx, "sales-stranger")

	addToDepartment(t, ctx, deptID, leadID)
	addToDepartment(t, ctx, deptID, repID)

	members, err := lookup.TeamMembers(ctx, leadID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "sales-lead", members[0].Username)
	assert.Equal(t, "sales-rep", members[1].Username)
}
