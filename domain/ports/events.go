package ports

import "context"

// Board event types fanned out to connected board viewers
const (
	EventTaskCreated       = "task.created"
	EventTaskUpdated       = "task.updated"
	EventTaskMoved         = "task.moved"
	EventTaskAssigned      = "task.assigned"
	EventTaskReviewed      = "task.reviewed"
	EventTaskArchived      = "task.archived"
	EventTaskDeleted       = "task.deleted"
	EventMoveRequested     = "moverequest.created"
	EventMoveRequestClosed = "moverequest.handled"
	EventBoardChanged      = "board.changed"
)

// BoardEvent is the push payload for a team's board room. Delivery is
// best-effort: clients that miss one re-fetch the full board and converge on
// the same state.
type BoardEvent struct {
	Type     string         `json:"type"`
	TeamID   uint           `json:"teamId"`
	TeamSlug string         `json:"teamSlug"`
	TaskID   uint           `json:"taskId,omitempty"`
	Actor    string         `json:"actor,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// BoardEventPublisher pushes board events into the fan-out pipeline.
// Publish errors are logged by callers, never surfaced to the request.
type BoardEventPublisher interface {
	Publish(ctx context.Context, event *BoardEvent) error
}

type BoardEventHandler func(event *BoardEvent)

// BoardEventSubscriber feeds published events to the websocket layer
type BoardEventSubscriber interface {
	Subscribe(ctx context.Context, handler BoardEventHandler) error
	Unsubscribe() error
}
