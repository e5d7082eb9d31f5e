package events

import (
	"context"

	"github.com/teamflow/teamflow-backend/internal/workspace/repository"
	"github.com/teamflow/teamflow-backend/pkg/logger"
	"github.com/teamflow/teamflow-backend/pkg/messaging"
)

// WorkspaceEventPublisher publishes workspace-related events
type WorkspaceEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewWorkspaceEventPublisher creates a new workspace event publisher
func NewWorkspaceEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*WorkspaceEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeWorkspaceEvents, "crm-service", log)
	if err != nil {
		return nil, err
	}

	return &WorkspaceEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishEventCreated publishes a calendar event created event
func (p *WorkspaceEventPublisher) PublishEventCreated(ctx context.Context, event *repository.CalendarEvent) {
	if p == nil {
		return
	}

	data := messaging.ScheduleItemCreatedEvent{
		ID:          event.ID,
		Title:       event.Title,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		CreatedBy:   event.CreatedBy,
		AttendeeIDs: attendeeIDs(event.Attendees),
	}

	if err := p.publisher.Publish(ctx, messaging.EventCalendarEventCreated, data); err != nil {
		p.logger.Error().Err(err).Str("event_id", event.ID).Msg("failed to publish calendar event created event")
	}
}

// PublishMeetingCreated publishes a meeting created event
func (p *WorkspaceEventPublisher) PublishMeetingCreated(ctx context.Context, meeting *repository.Meeting) {
	if p == nil {
		return
	}

	data := messaging.ScheduleItemCreatedEvent{
		ID:          meeting.ID,
		Title:       meeting.Title,
		StartTime:   meeting.StartTime,
		EndTime:     meeting.EndTime,
		CreatedBy:   meeting.CreatedBy,
		AttendeeIDs: attendeeIDs(meeting.Attendees),
	}

	if err := p.publisher.Publish(ctx, messaging.EventMeetingCreated, data); err != nil {
		p.logger.Error().Err(err).Str("meeting_id", meeting.ID).Msg("failed to publish meeting created event")
	}
}

// PublishDocumentUploaded publishes a document uploaded event
func (p *WorkspaceEventPublisher) PublishDocumentUploaded(ctx context.Context, doc *repository.Document) {
	if p == nil {
		return
	}

	data := messaging.DocumentUploadedEvent{
		ID:         doc.ID,
		Title:      doc.Title,
		UploadedBy: doc.UploadedBy,
		FilePath:   doc.FilePath,
	}

	if err := p.publisher.Publish(ctx, messaging.EventDocumentUploaded, data); err != nil {
		p.logger.Error().Err(err).Str("document_id", doc.ID).Msg("failed to publish document uploaded event")
	}
}

// PublishTaskCreated publishes a task created event
func (p *WorkspaceEventPublisher) PublishTaskCreated(ctx context.Context, task *repository.Task) {
	if p == nil {
		return
	}

	data := messaging.TaskCreatedEvent{
		ID:         task.ID,
		Title:      task.Title,
		AssignedTo: task.AssignedTo,
		DueDate:    task.DueDate,
	}

	if err := p.publisher.Publish(ctx, messaging.EventTaskCreated, data); err != nil {
		p.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to publish task created event")
	}
}

func attendeeIDs(attendees []*repository.UserSummary) []string {
	ids := make([]string, len(attendees))
	for i, a := range attendees {
		ids[i] = a.ID
	}
	return ids
}
