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

// Meeting is a scheduled meeting with an optional call link
type Meeting struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	StartTime   time.Time      `db:"start_time" json:"start_time"`
	EndTime     time.Time      `db:"end_time" json:"end_time"`
	MeetingLink string         `db:"meeting_link" json:"meeting_link"`
	CreatedBy   string         `db:"created_by" json:"created_by"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	Attendees   []*UserSummary `db:"-" json:"attendees"`
}

// MeetingRepository handles meeting persistence
type MeetingRepository struct {
	db *database.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *database.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts the meeting and its attendee rows in one transaction
func (r *MeetingRepository) Create(ctx context.Context, meeting *Meeting, attendeeIDs []string) error {
	if meeting.ID == "" {
		meeting.ID = uuid.New().String()
	}

	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO meetings (id, title, description, start_time, end_time, meeting_link, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at
		`
		err := tx.QueryRowxContext(ctx, query,
			meeting.ID, meeting.Title, meeting.Description,
			meeting.StartTime, meeting.EndTime, meeting.MeetingLink, meeting.CreatedBy,
		).Scan(&meeting.CreatedAt)
		if err != nil {
			return err
		}

		for _, userID := range attendeeIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO meeting_attendees (meeting_id, user_id) VALUES ($1, $2)`,
				meeting.ID, userID)
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

// GetByID gets a meeting with its attendees
func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*Meeting, error) {
	var meeting Meeting
	query := `
		SELECT id, title, description, start_time, end_time, meeting_link, created_by, created_at
		FROM meetings
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &meeting, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("meeting")
	}
	if err != nil {
		return nil, err
	}

	attendees, err := r.loadAttendees(ctx, []string{meeting.ID})
	if err != nil {
		return nil, err
	}
	meeting.Attendees = attendees[meeting.ID]

	return &meeting, nil
}

// List lists all meetings with their attendees
func (r *MeetingRepository) List(ctx context.Context) ([]*Meeting, error) {
	var meetings []*Meeting
	query := `
		SELECT id, title, description, start_time, end_time, meeting_link, created_by, created_at
		FROM meetings
		ORDER BY start_time
	`
	if err := r.db.SelectContext(ctx, &meetings, query); err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return meetings, nil
	}

	ids := make([]string, len(meetings))
	for i, m := range meetings {
		ids[i] = m.ID
	}

	attendees, err := r.loadAttendees(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range meetings {
		m.Attendees = attendees[m.ID]
	}

	return meetings, nil
}

type meetingAttendeeRow struct {
	MeetingID string `db:"meeting_id"`
	UserSummary
}

func (r *MeetingRepository) loadAttendees(ctx context.Context, meetingIDs []string) (map[string][]*UserSummary, error) {
	var rows []*meetingAttendeeRow
	query := `
		SELECT ma.meeting_id, u.id, u.username, u.email, u.first_name, u.last_name
		FROM meeting_attendees ma
		JOIN users u ON u.id = ma.user_id
		WHERE ma.meeting_id = ANY($1)
		ORDER BY u.username
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(meetingIDs)); err != nil {
		return nil, err
	}

	grouped := make(map[string][]*UserSummary, len(meetingIDs))
	for _, row := range rows {
		summary := row.UserSummary
		grouped[row.MeetingID] = append(grouped[row.MeetingID], &summary)
	}

	return grouped, nil
}

// CountUpcoming returns the number of meetings starting after now
func (r *MeetingRepository) CountUpcoming(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM meetings WHERE start_time > NOW()`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}
