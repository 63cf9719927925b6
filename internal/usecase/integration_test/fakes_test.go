package integrationtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/reelmate/core/internal/model"
	usecase_room "github.com/reelmate/core/internal/usecase/room"
)

// In-memory stand-ins for the Postgres drivers. They honor the same
// contracts: code uniqueness, conditional guest claim, swipe upsert and
// at-most-one match per (room, movie).

type fakeCatalog struct {
	movies []model.Movie
	byID   map[string]model.Movie
}

func newFakeCatalog(movies []model.Movie) *fakeCatalog {
	byID := make(map[string]model.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	return &fakeCatalog{movies: movies, byID: byID}
}

func (f *fakeCatalog) LoadAll(_ context.Context) ([]model.Movie, error) {
	return append([]model.Movie(nil), f.movies...), nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]model.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[string]model.Room)}
}

func (f *fakeRoomRepo) Create(_ context.Context, room model.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[room.Code]; ok {
		return usecase_room.ErrCodeConflict
	}
	f.rooms[room.Code] = room
	return nil
}

func (f *fakeRoomRepo) ByCode(_ context.Context, code string) (model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[code]
	if !ok {
		return model.Room{}, usecase_room.ErrResourceNotFound
	}
	return room, nil
}

func (f *fakeRoomRepo) ClaimGuestSlot(_ context.Context, code string, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[code]
	if !ok || room.GuestID != nil {
		return false, nil
	}
	room.GuestID = &userID
	f.rooms[code] = room
	return true, nil
}

func (f *fakeRoomRepo) SetFilters(_ context.Context, code string, criteria model.FilterCriteria) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[code]
	if !ok {
		return usecase_room.ErrResourceNotFound
	}
	room.Filters = criteria
	f.rooms[code] = room
	return nil
}

func (f *fakeRoomRepo) FiltersByCode(ctx context.Context, code string) (model.FilterCriteria, error) {
	room, err := f.ByCode(ctx, code)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	return room.Filters, nil
}

func (f *fakeRoomRepo) StatusByCode(ctx context.Context, code string) (string, error) {
	room, err := f.ByCode(ctx, code)
	if err != nil {
		return "", err
	}
	return room.Status, nil
}

func (f *fakeRoomRepo) SetStatusByCode(_ context.Context, code string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[code]
	if !ok {
		return usecase_room.ErrResourceNotFound
	}
	room.Status = status
	f.rooms[code] = room
	return nil
}

func (f *fakeRoomRepo) DeleteByCode(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[code]; !ok {
		return usecase_room.ErrResourceNotFound
	}
	delete(f.rooms, code)
	return nil
}

type fakeDeckRepo struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	decks   map[string][]string
}

func newFakeDeckRepo(catalog *fakeCatalog) *fakeDeckRepo {
	return &fakeDeckRepo{catalog: catalog, decks: make(map[string][]string)}
}

func (f *fakeDeckRepo) LoadOrdered(_ context.Context, code string) ([]model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.decks[code]
	movies := make([]model.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := f.catalog.byID[id]; ok {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func (f *fakeDeckRepo) Replace(_ context.Context, code string, movieIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decks[code] = append([]string(nil), movieIDs...)
	return nil
}

func (f *fakeDeckRepo) Clear(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.decks, code)
	return nil
}

type fakeSwipeRepo struct {
	mu     sync.Mutex
	swipes map[string]model.Direction
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{swipes: make(map[string]model.Direction)}
}

func swipeKey(code string, userID uuid.UUID, movieID string) string {
	return fmt.Sprintf("%s|%s|%s", code, userID, movieID)
}

func (f *fakeSwipeRepo) Upsert(_ context.Context, swipe model.Swipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swipes[swipeKey(swipe.RoomCode, swipe.UserID, swipe.MovieID)] = swipe.Direction
	return nil
}

func (f *fakeSwipeRepo) CountLikes(_ context.Context, code string, movieID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	suffix := "|" + movieID
	for key, direction := range f.swipes {
		if direction == model.Like &&
			len(key) > len(code)+len(suffix) &&
			key[:len(code)] == code &&
			key[len(key)-len(suffix):] == suffix {
			count++
		}
	}
	return count, nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	matched map[string]bool
	order   []string
	inserts int
}

func newFakeMatchRepo(catalog *fakeCatalog) *fakeMatchRepo {
	return &fakeMatchRepo{catalog: catalog, matched: make(map[string]bool)}
}

func (f *fakeMatchRepo) Create(_ context.Context, code string, movieID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := code + "|" + movieID
	if f.matched[key] {
		return false, nil
	}
	f.matched[key] = true
	f.order = append(f.order, key)
	f.inserts++
	return true, nil
}

func (f *fakeMatchRepo) MatchedMovies(_ context.Context, code string) ([]model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := code + "|"
	movies := make([]model.Movie, 0, len(f.order))
	for _, key := range f.order {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			if m, ok := f.catalog.byID[key[len(prefix):]]; ok {
				movies = append(movies, m)
			}
		}
	}
	return movies, nil
}
