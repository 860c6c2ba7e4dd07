package websocket

import (
	"encoding/json"
	"time"

	"fairshoppe/internal/usecase"
	"fairshoppe/pkg/logger"
)

const (
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeJobProgress = "job_progress"
	MessageTypeError       = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func newMessage(msgType string, data interface{}) WSMessage {
	return WSMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// HandleClientMessage processes incoming WebSocket messages. Clients only
// listen for job progress, so anything but ping is rejected.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		m.sendToClient(client, newMessage(MessageTypeError, map[string]string{"error": "Invalid message format"}))
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.sendToClient(client, newMessage(MessageTypePong, nil))
	default:
		m.sendToClient(client, newMessage(MessageTypeError, map[string]string{"error": "Unknown message type"}))
	}
}

// NotifyJobProgress pushes a background-removal update to every connection
// of the user. Users without a live connection simply miss the update.
func (m *Manager) NotifyJobProgress(userID string, progress usecase.JobProgress) {
	payload, err := json.Marshal(newMessage(MessageTypeJobProgress, progress))
	if err != nil {
		logger.Error("Failed to encode job progress for %s: %v", userID, err)
		return
	}
	m.SendToUser(userID, payload)
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to encode websocket message for %s: %v", client.UserID, err)
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if !m.clients[client.UserID][client] {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("WebSocket send buffer full for user %s, dropping message", client.UserID)
	}
}
