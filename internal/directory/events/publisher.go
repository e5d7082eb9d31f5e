package events

import (
	"context"

	"github.com/teamflow/teamflow-backend/internal/directory/repository"
	"github.com/teamflow/teamflow-backend/pkg/logger"
	"github.com/teamflow/teamflow-backend/pkg/messaging"
)

// DirectoryEventPublisher publishes directory-related events
type DirectoryEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewDirectoryEventPublisher creates a new directory event publisher
func NewDirectoryEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*DirectoryEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeDirectoryEvents, "crm-service", log)
	if err != nil {
		return nil, err
	}

	return &DirectoryEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishUserCreated publishes a user created event
func (p *DirectoryEventPublisher) PublishUserCreated(ctx context.Context, user *repository.User) {
	if p == nil {
		return
	}

	data := messaging.UserCreatedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	if err := p.publisher.Publish(ctx, messaging.EventUserCreated, data); err != nil {
		p.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to publish user created event")
	}
}

// PublishUserDeleted publishes a user deleted event
func (p *DirectoryEventPublisher) PublishUserDeleted(ctx context.Context, user *repository.User) {
	if p == nil {
		return
	}

	data := messaging.UserDeletedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}

	if err := p.publisher.Publish(ctx, messaging.EventUserDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to publish user deleted event")
	}
}
