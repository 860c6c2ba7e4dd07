package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"fairshoppe/internal/adapter/api/middleware"
	ws "fairshoppe/internal/infrastructure/websocket"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/response"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
	verifier  middleware.TokenVerifier
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, verifier middleware.TokenVerifier) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
		verifier:  verifier,
	}
}

// HandleWebSocket accepts the bearer header or, for browser clients that
// cannot set headers on upgrade, a token query parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		if token := c.QueryParam("token"); token != "" {
			uid, err := h.verifier.VerifyToken(token)
			if err == nil {
				userID = uid
			}
		}
	}
	if userID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	if !h.wsManager.Add(client) {
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
