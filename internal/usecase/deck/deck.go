package usecase_deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/reelmate/core/internal/model"
	usecase_room "github.com/reelmate/core/internal/usecase/room"
)

var (
	ErrFailedToLoadCatalog = errors.New("failed to load catalog")
	ErrFailedToStoreDeck   = errors.New("failed to store deck")
	ErrResourceNotFound    = errors.New("no such resource")
)

type CatalogRepository interface {
	// LoadAll returns the full catalog, paginating internally when it
	// exceeds a single-fetch row cap.
	LoadAll(ctx context.Context) ([]model.Movie, error)
}

type DeckRepository interface {
	// LoadOrdered hydrates a room's stored candidate list in position order.
	LoadOrdered(ctx context.Context, code string) ([]model.Movie, error)
	// Replace drops any stored list for the room and bulk-inserts ids with
	// positions 0..n-1.
	Replace(ctx context.Context, code string, movieIDs []string) error
	Clear(ctx context.Context, code string) error
}

type FilterSource interface {
	FiltersByCode(ctx context.Context, code string) (model.FilterCriteria, error)
}

type Usecase struct {
	catalog CatalogRepository
	decks   DeckRepository
	rooms   FilterSource
	logger  *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func New(catalog CatalogRepository, decks DeckRepository, rooms FilterSource) *Usecase {
	return &Usecase{
		catalog: catalog,
		decks:   decks,
		rooms:   rooms,
		logger:  slog.Default(),
	}
}

// NewWithRand pins the shuffle's randomness. Tests only.
func NewWithRand(catalog CatalogRepository, decks DeckRepository, rooms FilterSource, rnd *rand.Rand) *Usecase {
	u := New(catalog, decks, rooms)
	u.rnd = rnd
	return u
}

// Build returns the room's candidate list, materializing it on first use.
// A previously stored non-empty list is returned as-is, in stored order, so
// both participants and every reload see the same sequence. Re-filtering
// only happens after the list has been explicitly cleared (filter change).
func (u *Usecase) Build(ctx context.Context, code string) ([]model.Movie, error) {
	stored, err := u.decks.LoadOrdered(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToStoreDeck, err)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	criteria, err := u.rooms.FiltersByCode(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadCatalog, err)
	}

	catalog, err := u.catalog.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadCatalog, err)
	}

	deck := Filter(catalog, criteria)
	u.shuffle(deck)

	ids := make([]string, len(deck))
	for i, m := range deck {
		ids[i] = m.ID
	}
	if err := u.decks.Replace(ctx, code, ids); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToStoreDeck, err)
	}

	u.logger.Info("materialized candidate list",
		"room", code,
		"catalog", len(catalog),
		"deck", len(deck))

	return deck, nil
}

// shuffle is an in-place Fisher-Yates permutation.
func (u *Usecase) shuffle(deck []model.Movie) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := len(deck) - 1; i > 0; i-- {
		j := u.intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

func (u *Usecase) intn(n int) int {
	if u.rnd != nil {
		return u.rnd.Intn(n)
	}
	return rand.Intn(n)
}

// Filter applies the criteria in fixed order: year, genres, minimum rating,
// MPAA. A movie failing any enabled filter is dropped.
func Filter(catalog []model.Movie, criteria model.FilterCriteria) []model.Movie {
	out := make([]model.Movie, 0, len(catalog))
	for _, m := range catalog {
		if !passesYear(m, criteria) {
			continue
		}
		if !passesGenres(m, criteria) {
			continue
		}
		if !passesMinRating(m, criteria) {
			continue
		}
		if !passesMPAA(m, criteria) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func passesYear(m model.Movie, c model.FilterCriteria) bool {
	if m.Year == 0 {
		// Unknown year only matters when a bound is configured.
		return c.YearStart == 0 && c.YearEnd == 0
	}
	if c.YearStart != 0 && m.Year < c.YearStart {
		return false
	}
	if c.YearEnd != 0 && m.Year > c.YearEnd {
		return false
	}
	return true
}

// stemRules captures common genre spelling variations: a selected genre on
// the left matches any movie genre containing one of the stems on the right.
var stemRules = map[string][]string{
	"animation": {"animat"},
	"family":    {"famil", "child"},
	"fantasy":   {"fantas"},
	"adventure": {"adventur"},
}

func passesGenres(m model.Movie, c model.FilterCriteria) bool {
	if len(c.Genres) == 0 {
		return true
	}

	// OR across both sides: one movie genre matching one selected genre is
	// enough.
	for _, movieGenre := range m.Genres {
		mg := strings.ToLower(strings.TrimSpace(movieGenre))
		for _, selected := range c.Genres {
			if genreMatches(mg, strings.ToLower(strings.TrimSpace(selected))) {
				return true
			}
		}
	}
	return false
}

func genreMatches(movieGenre, selected string) bool {
	if movieGenre == selected {
		return true
	}
	// "computer animation" satisfies "animation".
	if strings.Contains(movieGenre, selected) {
		return true
	}
	for _, stem := range stemRules[selected] {
		if strings.Contains(movieGenre, stem) {
			return true
		}
	}
	return false
}

func passesMinRating(m model.Movie, c model.FilterCriteria) bool {
	if c.MinRating == 0 {
		return true
	}
	// An unrated movie is excluded outright while the filter is active.
	if m.Rating == nil {
		return false
	}
	return *m.Rating >= c.MinRating
}

func passesMPAA(m model.Movie, c model.FilterCriteria) bool {
	if len(c.MPAARatings) == 0 || m.MPAA == "" {
		// Movies without an MPAA rating always pass.
		return true
	}
	for _, accepted := range c.MPAARatings {
		if strings.EqualFold(accepted, m.MPAA) {
			return true
		}
	}
	return false
}
