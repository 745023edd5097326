package ws_room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/squabble-app/squabble/server/internal/model"
	usecase_room "github.com/squabble-app/squabble/server/internal/usecase/room"
	repo_mocks "github.com/squabble-app/squabble/server/internal/usecase/room/mocks/room/repository"
)

func newTestHub(t *testing.T) *Hub {
	roomRepo := repo_mocks.NewRoomRepository(t)
	roomRepo.On("Players", mock.Anything, mock.AnythingOfType("string")).
		Return([]model.Player{}, nil).Maybe()

	return NewHub(usecase_room.New(roomRepo, model.DefaultMaxPlayers, time.Hour, 20))
}

func registerClient(h *Hub, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.rooms[client.roomCode]; !exists {
		h.rooms[client.roomCode] = make(map[*Client]bool)
	}
	h.rooms[client.roomCode][client] = true
}

// A slow client gets dropped when its send buffer is full. Its read pump
// still unregisters it afterwards, and that second removal must not close
// the send channel again.
func TestSlowClientDropThenUnregister(t *testing.T) {
	h := newTestHub(t)

	slow := &Client{send: make(chan Event, 1), userName: "bob", roomCode: "AB12"}
	registerClient(h, slow)

	h.broadcastToRoom("AB12", Event{Type: EventLobbyUpdate})
	// Buffer is full now, the next broadcast drops the client.
	h.broadcastToRoom("AB12", Event{Type: EventLobbyUpdate})

	h.mu.RLock()
	_, tracked := h.clients[slow]
	_, roomKept := h.rooms["AB12"]
	h.mu.RUnlock()
	assert.False(t, tracked)
	assert.False(t, roomKept)

	assert.NotPanics(t, func() {
		h.handleUnregister(slow)
	})
}

// Healthy clients keep receiving after a slow one is dropped.
func TestBroadcastSkipsOnlySlowClient(t *testing.T) {
	h := newTestHub(t)

	slow := &Client{send: make(chan Event), userName: "bob", roomCode: "AB12"}
	healthy := &Client{send: make(chan Event, 4), userName: "carol", roomCode: "AB12"}
	registerClient(h, slow)
	registerClient(h, healthy)

	h.broadcastToRoom("AB12", Event{Type: EventGameStateChanged})

	assert.Len(t, healthy.send, 1)

	h.mu.RLock()
	_, slowTracked := h.clients[slow]
	_, healthyTracked := h.clients[healthy]
	h.mu.RUnlock()
	assert.False(t, slowTracked)
	assert.True(t, healthyTracked)
}
