package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GabrielDani/futebol-palpites-backend/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is consumed cross-origin by the web client; auth happens at
	// the token level, not the origin level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeScores upgrades the connection and subscribes it to the live score
// feed. The server pushes match and standings events; inbound messages are
// ignored.
func (h *WebSocketHandler) ServeScores(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, live.RoomScores)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
