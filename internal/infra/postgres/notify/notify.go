// Package notify is the store's push channel: mutating transactions publish
// room-scoped events with pg_notify and a single LISTEN connection fans them
// out to per-room subscriptions.
package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
)

const channelName = "room_events"

const (
	EventMatchCreated   = "match_created"
	EventFiltersUpdated = "filters_updated"
)

type Event struct {
	Room    string `json:"room"`
	Type    string `json:"type"`
	MovieID string `json:"movie_id,omitempty"`
}

// Execer is satisfied by *sqlx.DB and *sqlx.Tx, so publishing can ride the
// mutating transaction and never outlive a rollback.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func Publish(ctx context.Context, ex Execer, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `SELECT pg_notify($1, $2)`, channelName, string(payload))
	return err
}

// Subscription yields one room's events until Close.
type Subscription struct {
	C chan Event

	once     sync.Once
	listener *Listener
	room     string
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.listener.unsubscribe(s)
	})
}

// Listener owns the LISTEN connection and the subscriber registry.
type Listener struct {
	pql    *pq.Listener
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[string]map[*Subscription]bool
}

const (
	minReconnectInterval = 2 * time.Second
	maxReconnectInterval = time.Minute
)

func MustEstablishListener(dsn string) *Listener {
	logger := slog.Default()

	pql := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Error("listener connection event", "event", int(ev), "error", err)
			}
		})
	if err := pql.Listen(channelName); err != nil {
		panic(err)
	}

	return &Listener{
		pql:    pql,
		logger: logger,
		subs:   make(map[string]map[*Subscription]bool),
	}
}

// Run dispatches notifications until the listener is closed.
func (l *Listener) Run() {
	for n := range l.pql.Notify {
		if n == nil {
			// Reconnect marker; events sent while disconnected are lost,
			// which matches the at-most-once contract of the channel.
			continue
		}

		var event Event
		if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
			l.logger.Error("malformed room event payload", "payload", n.Extra, "error", err)
			continue
		}
		l.dispatch(event)
	}
}

func (l *Listener) Close() error {
	return l.pql.Close()
}

func (l *Listener) dispatch(event Event) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for sub := range l.subs[event.Room] {
		select {
		case sub.C <- event:
		default:
			l.logger.Warn("dropping room event for slow subscriber", "room", event.Room)
		}
	}
}

// Subscribe opens a cancellable stream of one room's events. Callers must
// Close the subscription on teardown.
func (l *Listener) Subscribe(room string) *Subscription {
	sub := &Subscription{
		C:        make(chan Event, 16),
		listener: l,
		room:     room,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.subs[room]; !ok {
		l.subs[room] = make(map[*Subscription]bool)
	}
	l.subs[room][sub] = true
	return sub
}

func (l *Listener) unsubscribe(sub *Subscription) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if room, ok := l.subs[sub.room]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(l.subs, sub.room)
		}
	}
	close(sub.C)
}
