package service

import (
	"context"
	"strings"
	"time"

	"github.com/teamflow/teamflow-backend/internal/workspace/events"
	"github.com/teamflow/teamflow-backend/internal/workspace/repository"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// WorkspaceService handles calendar events, meetings, documents and tasks
type WorkspaceService struct {
	eventRepo   *repository.EventRepository
	meetingRepo *repository.MeetingRepository
	docRepo     *repository.DocumentRepository
	taskRepo    *repository.TaskRepository
	users       *repository.UserLookup
	publisher   *events.WorkspaceEventPublisher
	logger      *logger.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	eventRepo *repository.EventRepository,
	meetingRepo *repository.MeetingRepository,
	docRepo *repository.DocumentRepository,
	taskRepo *repository.TaskRepository,
	users *repository.UserLookup,
	publisher *events.WorkspaceEventPublisher,
	log *logger.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		eventRepo:   eventRepo,
		meetingRepo: meetingRepo,
		docRepo:     docRepo,
		taskRepo:    taskRepo,
		users:       users,
		publisher:   publisher,
		logger:      log,
	}
}

// CreateEventRequest represents a create calendar event request
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	CreatedBy   string    `json:"created_by" validate:"required,uuid4"`
	AttendeeIDs []string  `json:"attendee_ids" validate:"dive,uuid4"`
}

// CreateMeetingRequest represents a create meeting request
type CreateMeetingRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	MeetingLink string    `json:"meeting_link" validate:"omitempty,url"`
	CreatedBy   string    `json:"created_by" validate:"required,uuid4"`
	AttendeeIDs []string  `json:"attendee_ids" validate:"dive,uuid4"`
}

// CreateDocumentRequest represents a create document request
type CreateDocumentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	FilePath    string `json:"file_path" validate:"required"`
	UploadedBy  string `json:"uploaded_by" validate:"required,uuid4"`
}

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	AssignedTo  string    `json:"assigned_to" validate:"required,uuid4"`
	Completed   bool      `json:"completed"`
}

// ManagerDashboard aggregates a manager's team state
type ManagerDashboard struct {
	TeamSize         int `json:"team_size"`
	OpenTasks        int `json:"open_tasks"`
	CompletedTasks   int `json:"completed_tasks"`
	UpcomingMeetings int `json:"upcoming_meetings"`
}

// resolveUsers checks that every referenced user exists before any row is
// written. Missing IDs surface as a not found error listing them.
func (s *WorkspaceService) resolveUsers(ctx context.Context, ids []string) error {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	missing, err := s.users.Missing(ctx, unique)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errors.NotFound("user").WithDetails(map[string]string{
			"missing_user_ids": strings.Join(missing, ", "),
		})
	}

	return nil
}

// CreateEvent creates a calendar event with its attendee set
func (s *WorkspaceService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*repository.CalendarEvent, error) {
	refs := append([]string{req.CreatedBy}, req.AttendeeIDs...)
	if err := s.resolveUsers(ctx, refs); err != nil {
		return nil, err
	}

	event := &repository.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedBy:   req.CreatedBy,
	}
	if err := s.eventRepo.Create(ctx, event, req.AttendeeIDs); err != nil {
		return nil, err
	}

	created, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishEventCreated(ctx, created)

	return created, nil
}

// ListEvents lists all calendar events
func (s *WorkspaceService) ListEvents(ctx context.Context) ([]*repository.CalendarEvent, error) {
	return s.eventRepo.List(ctx)
}

// CreateMeeting creates a meeting with its attendee set
func (s *WorkspaceService) CreateMeeting(ctx context.Context, req *CreateMeetingRequest) (*repository.Meeting, error) {
	refs := append([]string{req.CreatedBy}, req.AttendeeIDs...)
	if err := s.resolveUsers(ctx, refs); err != nil {
		return nil, err
	}

	meeting := &repository.Meeting{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingLink: req.MeetingLink,
		CreatedBy:   req.CreatedBy,
	}
	if err := s.meetingRepo.Create(ctx, meeting, req.AttendeeIDs); err != nil {
		return nil, err
	}

	created, err := s.meetingRepo.GetByID(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishMeetingCreated(ctx, created)

	return created, nil
}

// ListMeetings lists all meetings
func (s *WorkspaceService) ListMeetings(ctx context.Context) ([]*repository.Meeting, error) {
	return s.meetingRepo.List(ctx)
}

// CreateDocument creates a document record
func (s *WorkspaceService) CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*repository.Document, error) {
	if err := s.resolveUsers(ctx, []string{req.UploadedBy}); err != nil {
		return nil, err
	}

	doc := &repository.Document{
		Title:       req.Title,
		Description: req.Description,
		FilePath:    req.FilePath,
		UploadedBy:  req.UploadedBy,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.publisher.PublishDocumentUploaded(ctx, doc)

	return doc, nil
}

// ListDocuments lists all documents
func (s *WorkspaceService) ListDocuments(ctx context.Context) ([]*repository.Document, error) {
	return s.docRepo.List(ctx)
}

// CreateTask creates a task
func (s *WorkspaceService) CreateTask(ctx context.Context, req *CreateTaskRequest) (*repository.Task, error) {
	if err := s.resolveUsers(ctx, []string{req.AssignedTo}); err != nil {
		return nil, err
	}

	task := &repository.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		Completed:   req.Completed,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publisher.PublishTaskCreated(ctx, task)

	return task, nil
}

// ListTasks lists all tasks
func (s *WorkspaceService) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	return s.taskRepo.List(ctx)
}

// ListPersonalTasks lists the tasks assigned to the caller
func (s *WorkspaceService) ListPersonalTasks(ctx context.Context, userID string) ([]*repository.Task, error) {
	return s.taskRepo.ListByAssignee(ctx, userID)
}

// TeamMembers lists the users sharing a department with the caller
func (s *WorkspaceService) TeamMembers(ctx context.Context, userID string) ([]*repository.UserSummary, error) {
	return s.users.TeamMembers(ctx, userID)
}

// TeamTasks lists the tasks assigned across the caller's departments
func (s *WorkspaceService) TeamTasks(ctx context.Context, userID string) ([]*repository.Task, error) {
	return s.taskRepo.ListTeamTasks(ctx, userID)
}

// Dashboard builds the manager dashboard for the caller
func (s *WorkspaceService) Dashboard(ctx context.Context, userID string) (*ManagerDashboard, error) {
	members, err := s.users.TeamMembers(ctx, userID)
	if err != nil {
		return nil, err
	}

	open, completed, err := s.taskRepo.CountTeamTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.meetingRepo.CountUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		TeamSize:         len(members),
		OpenTasks:        open,
		CompletedTasks:   completed,
		UpcomingMeetings: upcoming,
	}, nil
}
