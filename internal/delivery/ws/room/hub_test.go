package ws_room

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/reelmate/core/internal/infra/postgres/notify"
	"github.com/reelmate/core/internal/model"
)

type HubSuite struct {
	suite.Suite
}

type stubMovies struct {
	movies map[string]model.Movie
}

func (s *stubMovies) GetByID(_ context.Context, id string) (model.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return model.Movie{}, errors.New("not found")
	}
	return m, nil
}

func receiveEvent(t provider.T, client *Client) Event {
	select {
	case raw := <-client.Send:
		var event Event
		assert.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *HubSuite) TestBuildEvent(t provider.T) {
	t.Parallel()

	movies := &stubMovies{movies: map[string]model.Movie{
		"m1": {ID: "m1", Title: "The Apartment"},
	}}
	hub := NewHub(nil, movies)

	matched := hub.buildEvent(notify.Event{
		Room:    "ABC123",
		Type:    notify.EventMatchCreated,
		MovieID: "m1",
	})
	assert.Equal(t, EventMatchFound, matched.Type)
	payload, ok := matched.Payload.(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, "m1", payload["movie_id"])
		movie, ok := payload["movie"].(model.Movie)
		if assert.True(t, ok) {
			assert.Equal(t, "The Apartment", movie.Title)
		}
	}

	// A hydration failure still announces the match by id.
	degraded := hub.buildEvent(notify.Event{
		Room:    "ABC123",
		Type:    notify.EventMatchCreated,
		MovieID: "m9",
	})
	assert.Equal(t, EventMatchFound, degraded.Type)
	payload, ok = degraded.Payload.(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, "m9", payload["movie_id"])
		_, hydrated := payload["movie"]
		assert.False(t, hydrated)
	}

	filters := hub.buildEvent(notify.Event{
		Room: "ABC123",
		Type: notify.EventFiltersUpdated,
	})
	assert.Equal(t, EventFiltersUpdated, filters.Type)
	assert.Nil(t, filters.Payload)
}

func (s *HubSuite) TestBroadcastToRoom(t provider.T) {
	t.Parallel()

	hub := &Hub{
		movies: &stubMovies{},
		logger: discardLogger(),
		rooms:  make(map[string]map[*Client]bool),
		subs:   make(map[string]*notify.Subscription),
	}

	inRoom := &Client{Send: make(chan []byte, 16), RoomCode: "ABC123"}
	elsewhere := &Client{Send: make(chan []byte, 16), RoomCode: "XYZ789"}
	hub.rooms["ABC123"] = map[*Client]bool{inRoom: true}
	hub.rooms["XYZ789"] = map[*Client]bool{elsewhere: true}

	hub.BroadcastToRoom("ABC123", Event{Type: EventFiltersUpdated})

	got := receiveEvent(t, inRoom)
	assert.Equal(t, EventFiltersUpdated, got.Type)

	select {
	case <-elsewhere.Send:
		t.Fatal("event leaked into another room")
	default:
	}
}

func TestHubSuite(t *testing.T) {
	suite.RunSuite(t, new(HubSuite))
}
