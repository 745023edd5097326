package ws_room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/squabble-app/squabble/server/internal/model"
	usecase_room "github.com/squabble-app/squabble/server/internal/usecase/room"
)

const (
	EventLobbyUpdate        = "LOBBY_UPDATE"
	EventGameStateChanged   = "GAME_STATE_CHANGED"
	EventPlayerIndexChanged = "PLAYER_INDEX_CHANGED"
	EventPodiumReady        = "PODIUM_READY"
	EventError              = "ERROR"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type roomEvent struct {
	roomCode string
	event    Event
}

type Hub struct {
	usecase    *usecase_room.Usecase
	logger     *slog.Logger
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomEvent
	mu         sync.RWMutex
}

func NewHub(usecase *usecase_room.Usecase) *Hub {
	return &Hub{
		usecase:    usecase,
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomEvent),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case roomEvent := <-h.broadcast:
			h.broadcastToRoom(roomEvent.roomCode, roomEvent.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.rooms[client.roomCode]; !exists {
		h.rooms[client.roomCode] = make(map[*Client]bool)
	}
	h.rooms[client.roomCode][client] = true

	h.logger.Info("client registered",
		"user", client.userName,
		"room", client.roomCode)

	go h.broadcastRoster(client.roomCode)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropClientLocked(client)

	h.logger.Info("client unregistered",
		"user", client.userName,
		"room", client.roomCode)

	if client.roomCode != "" {
		go h.broadcastRoster(client.roomCode)
	}
}

// broadcastRoster pushes the current player-name list so lobby screens
// can rerender without polling.
func (h *Hub) broadcastRoster(roomCode string) {
	players, err := h.usecase.Players(context.Background(), roomCode)
	if err != nil {
		h.logger.Error("failed to get players", "error", err, "room", roomCode)
		return
	}

	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}

	h.broadcastToRoom(roomCode, Event{
		Type: EventLobbyUpdate,
		Payload: map[string]interface{}{
			"player_names": names,
		},
	})
}

func (h *Hub) broadcastToRoom(roomCode string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if roomClients, exists := h.rooms[roomCode]; exists {
		for client := range roomClients {
			select {
			case client.send <- event:
			default:
				// Slow client, drop it.
				h.dropClientLocked(client)
			}
		}
	}
}

// dropClientLocked removes the client from both maps and closes its send
// channel. It is a no-op for a client already dropped, so the channel is
// closed exactly once even when a broadcast drop races the read pump's
// unregister. Caller must hold mu for writing.
func (h *Hub) dropClientLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)

	if roomClients, exists := h.rooms[client.roomCode]; exists {
		delete(roomClients, client)
		if len(roomClients) == 0 {
			delete(h.rooms, client.roomCode)
		}
	}

	close(client.send)
}

func (h *Hub) NotifyUserJoined(roomCode string) {
	go h.broadcastRoster(roomCode)
}

// NotifyStateChanged tells every subscribed client which screen to show
// next and, when the new phase is timed, the authoritative deadline to
// count down against.
func (h *Hub) NotifyStateChanged(roomCode string, state model.GameState, deadline *time.Time) {
	payload := map[string]interface{}{
		"state": string(state),
	}
	if deadline != nil {
		payload["deadline"] = deadline.UTC().Format(time.RFC3339)
	}

	h.broadcast <- roomEvent{
		roomCode: roomCode,
		event: Event{
			Type:    EventGameStateChanged,
			Payload: payload,
		},
	}

	if state == model.StatePodiumSongs {
		h.broadcast <- roomEvent{
			roomCode: roomCode,
			event: Event{
				Type: EventPodiumReady,
				Payload: map[string]interface{}{
					"room_code": roomCode,
					"timestamp": time.Now().Unix(),
				},
			},
		}
	}
}

func (h *Hub) NotifyPlayerIndexChanged(roomCode string, index int) {
	h.broadcast <- roomEvent{
		roomCode: roomCode,
		event: Event{
			Type: EventPlayerIndexChanged,
			Payload: map[string]interface{}{
				"current_player_index": index,
			},
		},
	}
}
