package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketManager tracks connected board viewers. Rooms are keyed by team
// slug; one connection per user so a React StrictMode double-mount does not
// leave a stale socket behind.
type WebSocketManager struct {
	clients         map[*websocket.Conn]Client
	userConnections map[uuid.UUID]*websocket.Conn
	rooms           map[string]map[*websocket.Conn]bool
	register        chan Client
	unregister      chan *websocket.Conn
	broadcast       chan BroadcastMessage
	mutex           sync.RWMutex
}

type Client struct {
	Conn   *websocket.Conn
	UserID uuid.UUID
	RoomID string
}

type Message struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data"`
	UserID string      `json:"userId,omitempty"`
	RoomID string      `json:"roomId,omitempty"`
}

type BroadcastMessage struct {
	Message Message
	RoomID  string
	UserID  *uuid.UUID
}

var Manager *WebSocketManager

func init() {
	Manager = &WebSocketManager{
		clients:         make(map[*websocket.Conn]Client),
		userConnections: make(map[uuid.UUID]*websocket.Conn),
		rooms:           make(map[string]map[*websocket.Conn]bool),
		register:        make(chan Client),
		unregister:      make(chan *websocket.Conn),
		broadcast:       make(chan BroadcastMessage),
	}
	go Manager.run()
}

func (m *WebSocketManager) run() {
	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()

			if oldConn, exists := m.userConnections[client.UserID]; exists {
				log.Printf("[WebSocket] Closing old connection for user: %s", client.UserID.String())
				if oldClient, ok := m.clients[oldConn]; ok {
					if oldClient.RoomID != "" && m.rooms[oldClient.RoomID] != nil {
						delete(m.rooms[oldClient.RoomID], oldConn)
						if len(m.rooms[oldClient.RoomID]) == 0 {
							delete(m.rooms, oldClient.RoomID)
						}
					}
					delete(m.clients, oldConn)
				}
				oldConn.Close()
			}

			m.clients[client.Conn] = client
			m.userConnections[client.UserID] = client.Conn

			if client.RoomID != "" {
				if m.rooms[client.RoomID] == nil {
					m.rooms[client.RoomID] = make(map[*websocket.Conn]bool)
				}
				m.rooms[client.RoomID][client.Conn] = true
			}
			m.mutex.Unlock()

			log.Printf("[WebSocket] Client connected: UserID=%s, RoomID=%s", client.UserID, client.RoomID)

		case conn := <-m.unregister:
			m.mutex.Lock()
			if client, ok := m.clients[conn]; ok {
				delete(m.clients, conn)

				if currentConn, exists := m.userConnections[client.UserID]; exists && currentConn == conn {
					delete(m.userConnections, client.UserID)
				}

				if client.RoomID != "" && m.rooms[client.RoomID] != nil {
					delete(m.rooms[client.RoomID], conn)
					if len(m.rooms[client.RoomID]) == 0 {
						delete(m.rooms, client.RoomID)
					}
				}

				conn.Close()
				log.Printf("[WebSocket] Client disconnected: UserID=%s, RoomID=%s", client.UserID, client.RoomID)
			}
			m.mutex.Unlock()

		case message := <-m.broadcast:
			m.mutex.RLock()
			if message.RoomID != "" {
				if clients, ok := m.rooms[message.RoomID]; ok {
					for conn := range clients {
						m.sendMessage(conn, message.Message)
					}
				}
			} else if message.UserID != nil {
				if conn, exists := m.userConnections[*message.UserID]; exists {
					m.sendMessage(conn, message.Message)
				}
			} else {
				for conn := range m.clients {
					m.sendMessage(conn, message.Message)
				}
			}
			m.mutex.RUnlock()
		}
	}
}

func (m *WebSocketManager) sendMessage(conn *websocket.Conn, message Message) {
	if err := conn.WriteJSON(message); err != nil {
		log.Printf("[WebSocket] Error sending message: %v", err)
		m.unregister <- conn
	}
}

func (m *WebSocketManager) RegisterClient(conn *websocket.Conn, userID uuid.UUID, roomID string) {
	m.register <- Client{
		Conn:   conn,
		UserID: userID,
		RoomID: roomID,
	}
}

func (m *WebSocketManager) UnregisterClient(conn *websocket.Conn) {
	m.unregister <- conn
}

func (m *WebSocketManager) BroadcastToRoom(roomID string, messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
		RoomID:  roomID,
	}
}

func (m *WebSocketManager) BroadcastToUser(userID uuid.UUID, messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
		UserID:  &userID,
	}
}

func (m *WebSocketManager) BroadcastToAll(messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
	}
}

func (m *WebSocketManager) GetRoomClients(roomID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if clients, ok := m.rooms[roomID]; ok {
		return len(clients)
	}
	return 0
}

func (m *WebSocketManager) GetTotalClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.clients)
}

// HandleWebSocketMessage processes inbound client messages. Clients join the
// room named after their team slug to receive that board's events.
func HandleWebSocketMessage(conn *websocket.Conn, messageType int, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Printf("[WebSocket] Error unmarshaling message: %v", err)
		return
	}

	switch message.Type {
	case "ping":
		conn.WriteJSON(Message{Type: "pong", Data: "pong"})

	case "join_board":
		if roomData, ok := message.Data.(map[string]interface{}); ok {
			if roomID, ok := roomData["roomId"].(string); ok {
				Manager.mutex.Lock()
				if client, exists := Manager.clients[conn]; exists {
					if client.RoomID != "" && Manager.rooms[client.RoomID] != nil {
						delete(Manager.rooms[client.RoomID], conn)
						if len(Manager.rooms[client.RoomID]) == 0 {
							delete(Manager.rooms, client.RoomID)
						}
					}

					client.RoomID = roomID
					Manager.clients[conn] = client

					if Manager.rooms[roomID] == nil {
						Manager.rooms[roomID] = make(map[*websocket.Conn]bool)
					}
					Manager.rooms[roomID][conn] = true
				}
				Manager.mutex.Unlock()

				conn.WriteJSON(Message{
					Type: "board_joined",
					Data: map[string]interface{}{
						"roomId":  roomID,
						"message": fmt.Sprintf("Joined board %s", roomID),
					},
				})
			}
		}

	case "leave_board":
		Manager.mutex.Lock()
		if client, exists := Manager.clients[conn]; exists {
			if client.RoomID != "" && Manager.rooms[client.RoomID] != nil {
				delete(Manager.rooms[client.RoomID], conn)
				if len(Manager.rooms[client.RoomID]) == 0 {
					delete(Manager.rooms, client.RoomID)
				}

				client.RoomID = ""
				Manager.clients[conn] = client
			}
		}
		Manager.mutex.Unlock()

		conn.WriteJSON(Message{Type: "board_left", Data: "Left board successfully"})

	default:
		log.Printf("[WebSocket] Unknown message type: %s", message.Type)
	}
}
