package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/ws"
)

// NewFeedHandler upgrades GET /api/chargers/feed to a websocket and streams
// charger status events to the client.
func NewFeedHandler(hub *ws.Hub, logger *zap.Logger) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("feed upgrade failed", zap.Error(err))
			return
		}
		hub.Subscribe(socket)
	}
}
