package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// UserSummary is the slice of a user embedded in workspace responses
type UserSummary struct {
	ID        string `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

// UserLookup resolves user references against the directory tables
type UserLookup struct {
	db *database.DB
}

// NewUserLookup creates a new user lookup
func NewUserLookup(db *database.DB) *UserLookup {
	return &UserLookup{db: db}
}

// Resolve returns the summaries for the given user IDs. IDs that do not
// exist are simply absent from the result; callers compare lengths.
func (l *UserLookup) Resolve(ctx context.Context, ids []string) ([]*UserSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []*UserSummary
	query := `
		SELECT id, username, email, first_name, last_name
		FROM users
		WHERE id = ANY($1)
	`
	if err := l.db.SelectContext(ctx, &users, query, pq.Array(ids)); err != nil {
		return nil, err
	}

	return users, nil
}

// Missing returns the subset of ids with no matching user
func (l *UserLookup) Missing(ctx context.Context, ids []string) ([]string, error) {
	found, err := l.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(found))
	for _, u := range found {
		known[u.ID] = true
	}

	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

// TeamMembers lists the users holding a role in any department where the
// given user also holds a role. The caller is part of their own team.
func (l *UserLookup) TeamMembers(ctx context.Context, userID string) ([]*UserSummary, error) {
	var users []*UserSummary
	query := `
		SELECT DISTINCT u.id, u.username, u.email, u.first_name, u.last_name
		FROM users u
		JOIN role_members rm ON rm.user_id = u.id
		JOIN roles r ON r.id = rm.role_id
		WHERE r.department_id IN (
			SELECT r2.department_id
			FROM roles r2
			JOIN role_members rm2 ON rm2.role_id = r2.id
			WHERE rm2.user_id = $1
		)
		ORDER BY u.username
	`
	if err := l.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, err
	}

	return users, nil
}
