// This file handles GET /ws/tournaments/:id — the live-update socket. A
// connected client receives the leaderboard snapshot every time a score is
// recorded or a game's status changes, pushed by the handlers through the Hub.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"

	"github.com/12ian34/ruffryder-api/internal/websocket"
)

// writeWait bounds each snapshot write; a peer that can't take a frame in
// this window gets its connection failed instead of backing up the hub.
const writeWait = 10 * time.Second

// WebSocketUpgrade rejects plain HTTP requests to the socket route before the
// upgrade handler runs.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if fiberws.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WatchTournament returns the upgrade handler for the live-update socket.
// Each connection becomes one Hub client keyed by tournament id; a writer
// goroutine drains the client's Send channel onto the socket while the read
// loop just waits for the peer to go away.
func WatchTournament(hub *websocket.Hub) fiber.Handler {
	return fiberws.New(func(conn *fiberws.Conn) {
		client := &websocket.Client{
			TournamentID: conn.Params("id"),
			Send:         make(chan []byte, 64),
		}
		hub.Register(client)
		defer hub.Unregister(client)

		go func() {
			// Send is closed by the Hub on unregister, which ends this loop.
			for msg := range client.Send {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(fiberws.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
