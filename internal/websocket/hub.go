// Package websocket implements a WebSocket Hub for pushing live score updates.
// After every scoring write the handlers recompute the leaderboard and hand
// the resulting snapshot to the Hub, which fans it out to every client
// watching that tournament. The scoring engine itself knows nothing about
// this — the Hub is the explicit notification the orchestration layer emits
// after calling the engine.
package websocket

import "sync"

// Client represents a single connected WebSocket client.
type Client struct {
	TournamentID string      // Which tournament this client is watching — used to route messages
	Send         chan []byte // Buffered channel of outgoing messages; the Hub writes here, the socket writer drains it
}

// Message is a unit of data to broadcast to all clients watching a tournament.
type Message struct {
	TournamentID string
	Data         []byte // JSON-encoded leaderboard snapshot
}

// Hub manages all active WebSocket connections, grouped by tournament ID.
// It runs in its own goroutine and processes registration, unregistration,
// and broadcast events through channels — this keeps all map mutation on a
// single goroutine, which avoids data races.
type Hub struct {
	// clients is a nested map: tournamentID -> set of Client pointers.
	// A map[*Client]bool as a "set" is the usual Go idiom.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu protects the clients map between the broadcast reads (RLock) and the
	// main loop's writes (Lock).
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub. The broadcast channel is buffered so
// handlers don't block if the Hub goroutine is briefly busy; register and
// unregister stay unbuffered because those must complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. It must be called in a goroutine
// ("go hub.Run()") and blocks forever, processing one event at a time.
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.TournamentID] == nil {
				h.clients[client.TournamentID] = make(map[*Client]bool)
			}
			h.clients[client.TournamentID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[msg.TournamentID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.Send <- msg.Data:
				// If the buffer is full the client is too slow — drop it
				// rather than blocking the broadcast loop for everyone else.
				// Dropped inline: Run is the only receiver on unregister, so
				// sending to it from here would deadlock the event loop.
				default:
					h.drop(client)
				}
			}
		}
	}
}

// drop removes a client and closes its Send channel. It is idempotent: the
// socket handler's deferred Unregister arrives after a slow client has
// already been dropped mid-broadcast, and must not close Send twice.
// Called only from the Run goroutine.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.TournamentID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send) // signals the socket writer goroutine to stop
	if len(clients) == 0 {
		delete(h.clients, client.TournamentID)
	}
}

// BroadcastToTournament sends data to all clients currently watching the
// given tournament. Handlers call this after every scoring write.
func (h *Hub) BroadcastToTournament(tournamentID string, data []byte) {
	h.broadcast <- &Message{TournamentID: tournamentID, Data: data}
}

// Register adds a client to the Hub so it starts receiving broadcasts.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the Hub when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
