package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
}

func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, authService: authService}
}

// Handle upgrades the connection and subscribes the client to the activity
// feed. Browsers cannot set headers on websocket requests, so the token
// travels as a query parameter.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	userIDStr, ok := (*claims)["sub"].(string)
	if !ok {
		http.Error(w, "Invalid token claims", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [WebSocketHandler] upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, userID)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
