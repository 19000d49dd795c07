package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"taskboard-api/domain/ports"
	"taskboard-api/pkg/logger"
)

// Publisher publishes board events to JetStream, one subject per team room.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) ports.BoardEventPublisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, event *ports.BoardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal board event: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", SubjectPrefix, event.TeamSlug)
	ack, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish board event",
			"type", event.Type,
			"team_slug", event.TeamSlug,
			"error", err,
		)
		return fmt.Errorf("failed to publish board event: %w", err)
	}

	logger.Debug("Board event published",
		"type", event.Type,
		"team_slug", event.TeamSlug,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}
