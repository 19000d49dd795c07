package websocket

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	websocketManager "taskboard-api/infrastructure/websocket"
	"taskboard-api/pkg/utils"
)

type WebSocketHandler struct{}

func NewWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket registers the viewer, joins the room passed in the `room`
// query parameter (the team slug), and pumps inbound messages.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	var userID uuid.UUID

	if userContext := c.Locals("user"); userContext != nil {
		if user, ok := userContext.(*utils.UserContext); ok {
			userID = user.ID
		}
	}

	if userID == uuid.Nil {
		userID = uuid.New()
		log.Printf("WebSocket: Anonymous user connected with ID: %s", userID.String())
	} else {
		log.Printf("WebSocket: Authenticated user connected: %s", userID.String())
	}

	roomID := c.Query("room", "")

	websocketManager.Manager.RegisterClient(c, userID, roomID)

	defer func() {
		websocketManager.Manager.UnregisterClient(c)
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			break
		}

		websocketManager.HandleWebSocketMessage(c, messageType, message)
	}
}
