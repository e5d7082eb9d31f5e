package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/teamflow/teamflow-backend/internal/workspace/repository"
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

func TestEventRepository_Create_WithAttendees(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(suite.DB)

	organizerID := suite.SeedUser(t, ctx, "event-organizer")
	anneID := suite.SeedUser(t, ctx, "anne-attends")
	benID := suite.SeedUser(t, ctx, "ben-attends")

	start := time.Now().UTC().Truncate(time.Second)
	event := &repository.CalendarEvent{
		Title:       "Quarterly planning",
		Description: "Roadmap review",
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		CreatedBy:   organizerID,
	}
	err := repo.Create(ctx, event, []string{anneID, benID})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)

	retrieved, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly planning", retrieved.Title)
	assert.Equal(t, organizerID, retrieved.CreatedBy)

	require.Len(t, retrieved.Attendees, 2)
	assert.Equal(t, "anne-attends", retrieved.Attendees[0].Username)
	assert.Equal(t, "ben-attends", retrieved.Attendees[1].Username)
}

func TestEventRepository_Create_MissingAttendeeRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(suite.DB)

	organizerID := suite.SeedUser(t, ctx, "rollback-organizer")
	before := suite.CountRows(t, ctx, "calendar_events")

	start := time.Now().UTC()
	event := &repository.CalendarEvent{
		Title:     "Ghost meeting",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		CreatedBy: organizerID,
	}
	err := repo.Create(ctx, event, []string{"07fcd7a0-2e6f-49a2-9a43-2c2f80f8a111"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	// The event row must not survive the failed attendee insert
	assert.Equal(t, before, suite.CountRows(t, ctx, "calendar_events"))
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(suite.DB)

	creatorID := suite.SeedUser(t, ctx, "list-organizer")
	start := time.Now().UTC()
	for _, title := range []string{"standup", "retro"} {
		event := &repository.CalendarEvent{
			Title:     title,
			StartTime: start,
			EndTime:   start.Add(30 * time.Minute),
			CreatedBy: creatorID,
		}
		require.NoError(t, repo.Create(ctx, event, []string{creatorID}))
	}

	events, err := repo.List(ctx)
	require.NoError(t, err)

	found := 0
	for _, e := range events {
		if e.CreatedBy == creatorID {
			found++
			require.Len(t, e.Attendees, 1)
			assert.Equal(t, "list-organizer", e.Attendees[0].Username)
		}
	}
	assert.Equal(t, 2, found)
}

func TestMeetingRepository_Create_WithAttendees(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMeetingRepository(suite.DB)

	hostID := suite.SeedUser(t, ctx, "meeting-host")
	guestID := suite.SeedUser(t, ctx, "meeting-guest")

	start := time.Now().UTC().Add(24 * time.Hour)
	meeting := &repository.Meeting{
		Title:       "Client onboarding",
		Description: "Walk through the contract",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		MeetingLink: "https://meet.example.com/onboarding",
		CreatedBy:   hostID,
	}
	require.NoError(t, repo.Create(ctx, meeting, []string{guestID}))

	retrieved, err := repo.GetByID(ctx, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example.com/onboarding", retrieved.MeetingLink)
	require.Len(t, retrieved.Attendees, 1)
	assert.Equal(t, "meeting-guest", retrieved.Attendees[0].Username)
}

func TestDocumentRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDocumentRepository(suite.DB)

	uploaderID := suite.SeedUser(t, ctx, "doc-uploader")

	doc := &repository.Document{
		Title:      "Onboarding checklist",
		FilePath:   "/files/onboarding.pdf",
		UploadedBy: uploaderID,
	}
	require.NoError(t, repo.Create(ctx, doc))
	assert.Equal(t, "doc-uploader", doc.UploaderName)

	docs, err := repo.List(ctx)
	require.NoError(t, err)

	var match *repository.Document
	for _, d := range docs {
		if d.ID == doc.ID {
			match = d
		}
	}
	require.NotNil(t, match)
	assert.Equal(t, "/files/onboarding.pdf", match.FilePath)
}

func TestUserLookup_Missing(t *testing.T) {
	ctx := context.Background()
	lookup := repository.NewUserLookup(suite.DB)

	knownID := suite.SeedUser(t, ctx, "lookup-known")
	unknownID := "57e3b85a-2f26-41d7-9f04-527cf2b5a001"

	missing, err := lookup.Missing(ctx, []string{knownID, unknownID})
	require.NoError(t, err)
	assert.Equal(t, []string{unknownID}, missing)
}
