package ws

import (
	"net/http"
	"os"

	"telegram_webapp/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades HTTP connections to the game socket. Authentication
// happens over the socket itself via AUTHORIZE, not at upgrade time: a
// client may open the connection before it has a session token and wait to
// log in, matching the "unauthenticated connections only accept AUTHORIZE"
// gate in §4.D.
type WSHandler struct {
	Hub *SessionHub
}

func NewWSHandler(hub *SessionHub) *WSHandler {
	return &WSHandler{Hub: hub}
}

func (h *WSHandler) HandleWS() gin.HandlerFunc {
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "err", err)
			return
		}

		client := NewClient(conn, h.Hub)
		go client.Run()
	}
}
