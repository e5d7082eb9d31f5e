package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

// CalendarEvent is a scheduled entry on the shared calendar
type CalendarEvent struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	StartTime   time.Time      `db:"start_time" json:"start_time"`
	EndTime     time.Time      `db:"end_time" json:"end_time"`
	CreatedBy   string         `db:"created_by" json:"created_by"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	Attendees   []*UserSummary `db:"-" json:"attendees"`
}

// EventRepository handles calendar event persistence
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts the event and its attendee rows in one transaction
func (r *EventRepository) Create(ctx context.Context, event *CalendarEvent, attendeeIDs []string) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO calendar_events (id, title, description, start_time, end_time, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at
		`
		err := tx.QueryRowxContext(ctx, query,
			event.ID, event.Title, event.Description,
			event.StartTime, event.EndTime, event.CreatedBy,
		).Scan(&event.CreatedAt)
		if err != nil {
			return err
		}

		for _, userID := range attendeeIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO event_attendees (event_id, user_id) VALUES ($1, $2)`,
				event.ID, userID)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}

// GetByID gets an event with its attendees
func (r *EventRepository) GetByID(ctx context.Context, id string) (*CalendarEvent, error) {
	var event CalendarEvent
	query := `
		SELECT id, title, description, start_time, end_time, created_by, created_at
		FROM calendar_events
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &event, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("event")
	}
	if err != nil {
		return nil, err
	}

	attendees, err := r.loadAttendees(ctx, []string{event.ID})
	if err != nil {
		return nil, err
	}
	event.Attendees = attendees[event.ID]

	return &event, nil
}

// List lists all events with their attendees
func (r *EventRepository) List(ctx context.Context) ([]*CalendarEvent, error) {
	var events []*CalendarEvent
	query := `
		SELECT id, title, description, start_time, end_time, created_by, created_at
		FROM calendar_events
		ORDER BY start_time
	`
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	attendees, err := r.loadAttendees(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		e.Attendees = attendees[e.ID]
	}

	return events, nil
}

type eventAttendeeRow struct {
	EventID string `db:"event_id"`
	UserSummary
}

func (r *EventRepository) loadAttendees(ctx context.Context, eventIDs []string) (map[string][]*UserSummary, error) {
	var rows []*eventAttendeeRow
	query := `
		SELECT ea.event_id, u.id, u.username, u.email, u.first_name, u.last_name
		FROM event_attendees ea
		JOIN users u ON u.id = ea.user_id
		WHERE ea.event_id = ANY($1)
		ORDER BY u.username
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(eventIDs)); err != nil {
		return nil, err
	}

	grouped := make(map[string][]*UserSummary, len(eventIDs))
	for _, row := range rows {
		summary := row.UserSummary
		grouped[row.EventID] = append(grouped[row.EventID], &summary)
	}

	return grouped, nil
}

// CountAll returns the number of events
func (r *EventRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM calendar_events`); err != nil {
		return 0, err
	}
	return count, nil
}
