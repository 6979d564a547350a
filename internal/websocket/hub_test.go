package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRoutesByTournament(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := &Client{TournamentID: "t1", Send: make(chan []byte, 4)}
	other := &Client{TournamentID: "t2", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastToTournament("t1", []byte("snapshot"))

	select {
	case msg := <-watcher.Send:
		assert.Equal(t, []byte("snapshot"), msg)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never received the broadcast")
	}
	select {
	case msg := <-other.Send:
		t.Fatalf("client on another tournament received %q", msg)
	default:
	}
}

// A client whose Send buffer is full gets dropped by the broadcast loop
// itself. The drop must happen inline: if the loop instead sent the client
// back through the unregister channel it would block forever, since Run is
// that channel's only receiver, and every later Register and scoring
// broadcast would hang behind it.
func TestHubDropsSlowClientWithoutStalling(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{TournamentID: "t1", Send: make(chan []byte, 1)}
	sentinel := &Client{TournamentID: "t1", Send: make(chan []byte, 4)}
	hub.Register(slow)
	hub.Register(sentinel)

	// The first message fills slow's one-slot buffer; the second overflows it.
	hub.BroadcastToTournament("t1", []byte("one"))
	hub.BroadcastToTournament("t1", []byte("two"))

	// The sentinel has room for both, so receiving the second message proves
	// the hub worked through the broadcast that overflowed the slow client.
	for i := 0; i < 2; i++ {
		select {
		case <-sentinel.Send:
		case <-time.After(2 * time.Second):
			t.Fatal("hub event loop stalled while dropping a slow client")
		}
	}

	// A synchronous Register completes only once the hub is back in its
	// select loop, so it proves the drop didn't wedge the loop.
	done := make(chan struct{})
	go func() {
		hub.Register(&Client{TournamentID: "t1", Send: make(chan []byte, 1)})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting registrations after dropping a slow client")
	}

	// The dropped client keeps its buffered message but its channel is
	// closed, which is what stops the socket writer goroutine.
	msg, ok := <-slow.Send
	require.True(t, ok)
	assert.Equal(t, []byte("one"), msg)
	_, ok = <-slow.Send
	assert.False(t, ok, "expected Send to be closed after the drop")

	// The socket handler's deferred Unregister still fires for a client the
	// hub already dropped; it must be a no-op, not a double close.
	hub.Unregister(slow)
}
