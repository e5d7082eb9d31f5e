package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Directory events
	EventUserCreated = "crm.user.created"
	EventUserDeleted = "crm.user.deleted"

	// Workspace events
	EventCalendarEventCreated = "crm.event.created"
	EventMeetingCreated       = "crm.meeting.created"
	EventDocumentUploaded     = "crm.document.uploaded"
	EventTaskCreated          = "crm.task.created"
)

// Exchange names
const (
	ExchangeDirectoryEvents = "directory.events"
	ExchangeWorkspaceEvents = "workspace.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserDeletedEvent is published when a user is deleted. Consumers drop any
// state they hold for the user; the database cascades owned records itself.
type UserDeletedEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ScheduleItemCreatedEvent is published for new calendar events and meetings
type ScheduleItemCreatedEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedBy   string    `json:"created_by"`
	AttendeeIDs []string  `json:"attendee_ids"`
}

// DocumentUploadedEvent is published when a document record is created
type DocumentUploadedEvent struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	UploadedBy string `json:"uploaded_by"`
	FilePath   string `json:"file_path"`
}

// TaskCreatedEvent is published when a task is created
type TaskCreatedEvent struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	AssignedTo string    `json:"assigned_to"`
	DueDate    time.Time `json:"due_date"`
}
