package websocket

import (
	"context"
	"sync"

	"taskboard-api/domain/ports"
	"taskboard-api/pkg/logger"
)

// BoardBroadcaster receives board events from the event bus and fans them
// out to the websocket room of the affected team.
type BoardBroadcaster struct {
	eventSub  ports.BoardEventSubscriber
	manager   *WebSocketManager
	running   bool
	runningMu sync.Mutex
	cancelCtx context.CancelFunc
}

func NewBoardBroadcaster(eventSub ports.BoardEventSubscriber) *BoardBroadcaster {
	return &BoardBroadcaster{
		eventSub: eventSub,
		manager:  Manager,
	}
}

func (b *BoardBroadcaster) Start() error {
	b.runningMu.Lock()
	if b.running {
		b.runningMu.Unlock()
		return nil
	}
	b.running = true
	b.runningMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelCtx = cancel

	if err := b.eventSub.Subscribe(ctx, b.handleBoardEvent); err != nil {
		b.runningMu.Lock()
		b.running = false
		b.runningMu.Unlock()
		return err
	}

	logger.Info("Board broadcaster started")
	return nil
}

func (b *BoardBroadcaster) handleBoardEvent(event *ports.BoardEvent) {
	if event == nil || event.TeamSlug == "" {
		logger.Warn("Invalid board event received")
		return
	}

	b.manager.BroadcastToRoom(event.TeamSlug, event.Type, event)

	logger.Debug("Board event broadcasted",
		"type", event.Type,
		"team_slug", event.TeamSlug,
		"task_id", event.TaskID,
		"clients_count", b.manager.GetRoomClients(event.TeamSlug),
	)
}

func (b *BoardBroadcaster) Stop() {
	b.runningMu.Lock()
	defer b.runningMu.Unlock()

	if !b.running {
		return
	}
	b.running = false

	if b.cancelCtx != nil {
		b.cancelCtx()
	}

	if b.eventSub != nil {
		if err := b.eventSub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe board events", "error", err)
		}
	}

	logger.Info("Board broadcaster stopped")
}

func (b *BoardBroadcaster) IsRunning() bool {
	b.runningMu.Lock()
	defer b.runningMu.Unlock()
	return b.running
}
