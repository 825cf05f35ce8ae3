package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// SessionChecker reports whether a shell session id is live. Implemented
// by the shell service so the hub package stays transport-only.
type SessionChecker interface {
	SessionExists(sessionId uuid.UUID) bool
}

// ServeWs upgrades the connection and attaches it to the session's
// snapshot stream.
func ServeWs(hub *Hub, sessions SessionChecker) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		sessionId, err := uuid.Parse(conn.Params("sessionId"))
		if err != nil {
			conn.Close()
			return
		}
		if sessions != nil && !sessions.SessionExists(sessionId) {
			conn.Close()
			return
		}

		client := &Client{
			Hub:       hub,
			Conn:      conn,
			Send:      make(chan []byte, 256),
			SessionID: sessionId,
		}
		client.Hub.register <- client

		go client.writePump()
		client.readPump()
	})
}

// UpgradeMiddleware rejects plain HTTP requests on the websocket route.
func UpgradeMiddleware(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
