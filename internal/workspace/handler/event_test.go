package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/teamflow/teamflow-backend/internal/workspace/handler"
	"github.com/teamflow/teamflow-backend/internal/workspace/repository"
	"github.com/teamflow/teamflow-backend/internal/workspace/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
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

func newRouter() chi.Router {
	log := logger.New("workspace-test", "test")
	svc := service.NewWorkspaceService(
		repository.NewEventRepository(suite.DB),
		repository.NewMeetingRepository(suite.DB),
		repository.NewDocumentRepository(suite.DB),
		repository.NewTaskRepository(suite.DB),
		repository.NewUserLookup(suite.DB),
		nil, // events are optional in tests
		log,
	)
	events := handler.NewEventHandler(svc, log)
	tasks := handler.NewTaskHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/calendar/events", func(r chi.Router) {
		r.Get("/", events.List)
		r.Post("/", events.Create)
	})
	r.Get("/personal/tasks", tasks.ListPersonal)
	return r
}

func postJSON(t *testing.T, router chi.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEventHandler_Create(t *testing.T) {
	ctx := context.Background()
	router := newRouter()

	organizerID := suite.SeedUser(t, ctx, "handler-organizer")
	attendeeID := suite.SeedUser(t, ctx, "handler-attendee")

	start := time.Now().UTC().Truncate(time.Second)
	rec := postJSON(t, router, "/calendar/events", map[string]interface{}{
		"title":        "Sprint review",
		"description":  "Demo the release",
		"start_time":   start.Format(time.RFC3339),
		"end_time":     start.Add(time.Hour).Format(time.RFC3339),
		"created_by":   organizerID,
		"attendee_ids": []string{attendeeID},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    *repository.CalendarEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Sprint review", resp.Data.Title)
	require.Len(t, resp.Data.Attendees, 1)
	assert.Equal(t, "handler-attendee", resp.Data.Attendees[0].Username)
}

func TestEventHandler_Create_EndBeforeStart(t *testing.T) {
	ctx := context.Background()
	router := newRouter()

	organizerID := suite.SeedUser(t, ctx, "handler-backwards")
	start := time.Now().UTC()
	rec := postJSON(t, router, "/calendar/events", map[string]interface{}{
		"title":      "Backwards event",
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(-time.Hour).Format(time.RFC3339),
		"created_by": organizerID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "EndTime")
}

func TestEventHandler_Create_UnknownAttendee(t *testing.T) {
	ctx := context.Background()
	router := newRouter()

	organizerID := suite.SeedUser(t, ctx, "handler-lonely")
	start := time.Now().UTC()
	rec := postJSON(t, router, "/calendar/events", map[string]interface{}{
		"title":        "Imaginary friends",
		"start_time":   start.Format(time.RFC3339),
		"end_time":     start.Add(time.Hour).Format(time.RFC3339),
		"created_by":   organizerID,
		"attendee_ids": []string{"b01dfc7e-55a0-47a8-9e34-0c1d2e3f4001"},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "missing_user_ids")
}

func TestTaskHandler_ListPersonal(t *testing.T) {
	ctx := context.Background()
	router := newRouter()

	mineID := suite.SeedUser(t, ctx, "handler-assignee")
	otherID := suite.SeedUser(t, ctx, "handler-bystander")

	taskRepo := repository.NewTaskRepository(suite.DB)
	due := time.Now().UTC().Add(24 * time.Hour)
	for i, assignee := range []string{mineID, mineID, otherID} {
		task := &repository.Task{
			Title:      fmt.Sprintf("personal task %d", i),
			DueDate:    due,
			AssignedTo: assignee,
		}
		require.NoError(t, taskRepo.Create(ctx, task))
	}

	req := httptest.NewRequest(http.MethodGet, "/personal/tasks", nil)
	req = req.WithContext(httputil.WithUserID(req.Context(), mineID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    []*repository.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	for _, task := range resp.Data {
		assert.Equal(t, mineID, task.AssignedTo)
	}

	// Without an identity the endpoint refuses to serve
	anon := httptest.NewRequest(http.MethodGet, "/personal/tasks", nil)
	anonRec := httptest.NewRecorder()
	router.ServeHTTP(anonRec, anon)
	assert.Equal(t, http.StatusUnauthorized, anonRec.Code)
}
