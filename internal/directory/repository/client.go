package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Client represents an external contact belonging to an organisation profile
type Client struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Phone          string    `db:"phone" json:"phone"`
	Address        string    `db:"address" json:"address"`
	Email          string    `db:"email" json:"email"`
	OrganisationID string    `db:"organisation_id" json:"organisation_id"`
	DateCreated    time.Time `db:"date_created" json:"date_created"`
}

// ClientRepository handles client persistence
type ClientRepository struct {
	db *database.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *database.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}

	query := `
		INSERT INTO clients (id, name, phone, address, email, organisation_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING date_created
	`
	err := r.db.QueryRowxContext(ctx, query,
		client.ID, client.Name, client.Phone, client.Address,
		client.Email, client.OrganisationID,
	).Scan(&client.DateCreated)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}

// List lists all clients
func (r *ClientRepository) List(ctx context.Context) ([]*Client, error) {
	var clients []*Client
	query := `
		SELECT id, name, phone, address, email, organisation_id, date_created
		FROM clients
		ORDER BY date_created
	`
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, err
	}

	return clients, nil
}

// ListByOrganisation lists the clients attached to one organisation profile
func (r *ClientRepository) ListByOrganisation(ctx context.Context, organisationID string) ([]*Client, error) {
	var clients []*Client
	query := `
		SELECT id, name, phone, address, email, organisation_id, date_created
		FROM clients
		WHERE organisation_id = $1
		ORDER BY date_created
	`
	if err := r.db.SelectContext(ctx, &clients, query, organisationID); err != nil {
		return nil, err
	}

	return clients, nil
}
