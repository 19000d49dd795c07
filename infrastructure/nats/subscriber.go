package nats

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"taskboard-api/domain/ports"
	"taskboard-api/pkg/logger"
)

// Subscriber feeds published board events to the websocket layer. It uses a
// core subscription on the stream subjects; delivery to viewers is
// best-effort so there is no consumer state to manage.
type Subscriber struct {
	conn *nats.Conn
	sub  *nats.Subscription
	mu   sync.Mutex
}

func NewSubscriber(client *Client) ports.BoardEventSubscriber {
	return &Subscriber{conn: client.Conn()}
}

func (s *Subscriber) Subscribe(ctx context.Context, handler ports.BoardEventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		return nil
	}

	sub, err := s.conn.Subscribe(SubjectPrefix+".>", func(msg *nats.Msg) {
		var event ports.BoardEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error("Failed to parse board event", "subject", msg.Subject, "error", err)
			return
		}

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Board event handler panicked", "error", r)
			}
		}()
		handler(&event)
	})
	if err != nil {
		return err
	}
	s.sub = sub

	logger.Info("NATS subscriber started", "subject", SubjectPrefix+".>")
	return nil
}

func (s *Subscriber) Unsubscribe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub == nil {
		return nil
	}
	if err := s.sub.Unsubscribe(); err != nil {
		logger.Warn("Failed to unsubscribe", "error", err)
	}
	s.sub = nil

	logger.Info("NATS subscriber stopped")
	return nil
}
