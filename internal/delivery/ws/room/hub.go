package ws_room

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/reelmate/core/internal/infra/postgres/notify"
	"github.com/reelmate/core/internal/model"
)

const (
	EventMatchFound     = "MATCH_FOUND"
	EventFiltersUpdated = "FILTERS_UPDATED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type Client struct {
	Conn     *websocket.Conn
	Send     chan []byte
	RoomCode string
}

// Notifier is the store's push channel; implemented by notify.Listener.
type Notifier interface {
	Subscribe(room string) *notify.Subscription
}

// MovieLoader hydrates match events so clients don't need a follow-up fetch.
type MovieLoader interface {
	GetByID(ctx context.Context, id string) (model.Movie, error)
}

// Hub fans room events out to that room's websocket clients. It holds one
// store subscription per room with at least one client and closes it when
// the room empties, so no events are acted on for abandoned rooms.
type Hub struct {
	notifier Notifier
	movies   MovieLoader
	logger   *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
	subs  map[string]*notify.Subscription
}

func NewHub(notifier Notifier, movies MovieLoader) *Hub {
	return &Hub{
		notifier: notifier,
		movies:   movies,
		logger:   slog.Default(),
		rooms:    make(map[string]map[*Client]bool),
		subs:     make(map[string]*notify.Subscription),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.RoomCode]; !ok {
		h.rooms[client.RoomCode] = make(map[*Client]bool)

		sub := h.notifier.Subscribe(client.RoomCode)
		h.subs[client.RoomCode] = sub
		go h.forward(client.RoomCode, sub)
	}
	h.rooms[client.RoomCode][client] = true

	h.logger.Info("client registered", "room", client.RoomCode)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.RoomCode]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.Send)

	if len(room) == 0 {
		delete(h.rooms, client.RoomCode)
		if sub, ok := h.subs[client.RoomCode]; ok {
			sub.Close()
			delete(h.subs, client.RoomCode)
		}
	}

	h.logger.Info("client unregistered", "room", client.RoomCode)
}

// forward drains one room's store subscription until it is closed.
func (h *Hub) forward(roomCode string, sub *notify.Subscription) {
	for storeEvent := range sub.C {
		h.BroadcastToRoom(roomCode, h.buildEvent(storeEvent))
	}
}

func (h *Hub) buildEvent(storeEvent notify.Event) Event {
	switch storeEvent.Type {
	case notify.EventMatchCreated:
		payload := map[string]interface{}{
			"movie_id": storeEvent.MovieID,
		}
		if movie, err := h.movies.GetByID(context.Background(), storeEvent.MovieID); err == nil {
			payload["movie"] = movie
		} else {
			h.logger.Error("failed to hydrate matched movie",
				"movie", storeEvent.MovieID, "error", err)
		}
		return Event{Type: EventMatchFound, Payload: payload}

	case notify.EventFiltersUpdated:
		return Event{Type: EventFiltersUpdated}

	default:
		return Event{Type: storeEvent.Type}
	}
}

func (h *Hub) BroadcastToRoom(roomCode string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	messageBytes, _ := json.Marshal(event)

	for client := range h.rooms[roomCode] {
		select {
		case client.Send <- messageBytes:
		default:
			// Slow consumer; it will be cleaned up by its read loop.
			h.logger.Warn("dropping event for slow client", "room", roomCode)
		}
	}
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
