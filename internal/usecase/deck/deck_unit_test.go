//go:build !integration
// +build !integration

package usecase_deck

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/reelmate/core/internal/model"
	"github.com/reelmate/core/internal/usecase/deck/mocks"
	usecase_room "github.com/reelmate/core/internal/usecase/room"
)

type UsecaseDeckUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	catalog *mocks.CatalogRepository
	decks   *mocks.DeckRepository
	rooms   *mocks.FilterSource
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	catalog := mocks.NewCatalogRepository(t)
	decks := mocks.NewDeckRepository(t)
	rooms := mocks.NewFilterSource(t)
	usecase := NewWithRand(catalog, decks, rooms, rand.New(rand.NewSource(42)))

	return &resources{
		usecase: usecase,
		catalog: catalog,
		decks:   decks,
		rooms:   rooms,
		ctx:     context.Background(),
	}
}

func ratingOf(v float64) *float64 {
	return &v
}

func sampleCatalog() []model.Movie {
	return []model.Movie{
		{ID: "m1", Title: "The Apartment", Year: 1960, Genres: []string{"Comedy", "Drama"}, Rating: ratingOf(9.3), MPAA: "PG"},
		{ID: "m2", Title: "Alien", Year: 1979, Genres: []string{"Horror", "Sci-Fi"}, Rating: ratingOf(9.8), MPAA: "R"},
		{ID: "m3", Title: "Spirited Away", Year: 2001, Genres: []string{"Computer Animation", "Fantasy"}, Rating: ratingOf(9.6), MPAA: "PG"},
		{ID: "m4", Title: "Unknown Year", Year: 0, Genres: []string{"Comedy"}, Rating: ratingOf(6.0)},
		{ID: "m5", Title: "Unrated", Year: 1995, Genres: []string{"Comedy"}, Rating: nil},
	}
}

func (suite *UsecaseDeckUnitSuite) TestFilter(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		criteria model.FilterCriteria
		expected []string
	}{
		{
			name:     "Should pass everything with empty criteria",
			criteria: model.FilterCriteria{},
			expected: []string{"m1", "m2", "m3", "m4", "m5"},
		},
		{
			name:     "Should bound by year range and drop unknown years",
			criteria: model.FilterCriteria{YearStart: 1970, YearEnd: 2000},
			expected: []string{"m2", "m5"},
		},
		{
			name:     "Should bound by start year only",
			criteria: model.FilterCriteria{YearStart: 1990},
			expected: []string{"m3", "m5"},
		},
		{
			name:     "Should match any selected genre",
			criteria: model.FilterCriteria{Genres: []string{"Comedy", "Horror"}},
			expected: []string{"m1", "m2", "m4", "m5"},
		},
		{
			name:     "Should match genre by containment",
			criteria: model.FilterCriteria{Genres: []string{"animation"}},
			expected: []string{"m3"},
		},
		{
			name:     "Should match genre by stem",
			criteria: model.FilterCriteria{Genres: []string{"Fantasy"}},
			expected: []string{"m3"},
		},
		{
			name:     "Should exclude unrated movies under a rating floor",
			criteria: model.FilterCriteria{MinRating: 9.0},
			expected: []string{"m1", "m2", "m3"},
		},
		{
			name:     "Should restrict by MPAA but pass unrated MPAA",
			criteria: model.FilterCriteria{MPAARatings: []string{"PG"}},
			expected: []string{"m1", "m3", "m4", "m5"},
		},
		{
			name: "Should apply all filters together",
			criteria: model.FilterCriteria{
				Genres:    []string{"Comedy"},
				YearStart: 1950,
				YearEnd:   1990,
				MinRating: 7,
			},
			expected: []string{"m1"},
		},
		{
			name:     "Should return empty when nothing passes",
			criteria: model.FilterCriteria{Genres: []string{"Western"}},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()

			filtered := Filter(sampleCatalog(), tc.criteria)

			ids := make([]string, len(filtered))
			for i, m := range filtered {
				ids[i] = m.ID
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func (suite *UsecaseDeckUnitSuite) TestBuildMaterializes(t provider.T) {
	t.Parallel()

	r := initResources(t)
	code := "ABC123"
	criteria := model.FilterCriteria{Genres: []string{"Comedy"}, MinRating: 7}

	var storedIDs []string
	r.decks.On("LoadOrdered", r.ctx, code).Return([]model.Movie{}, nil).Once()
	r.rooms.On("FiltersByCode", r.ctx, code).Return(criteria, nil).Once()
	r.catalog.On("LoadAll", r.ctx).Return(sampleCatalog(), nil).Once()
	r.decks.On("Replace", r.ctx, code, mock.AnythingOfType("[]string")).
		Run(func(args mock.Arguments) {
			storedIDs = args.Get(2).([]string)
		}).
		Return(nil).Once()

	deck, err := r.usecase.Build(r.ctx, code)

	assert.NoError(t, err)
	assert.Len(t, deck, 1)
	assert.Equal(t, "m1", deck[0].ID)
	assert.Equal(t, []string{"m1"}, storedIDs)
}

func (suite *UsecaseDeckUnitSuite) TestBuildShufflesPermutation(t provider.T) {
	t.Parallel()

	r := initResources(t)
	code := "ABC123"

	var storedIDs []string
	r.decks.On("LoadOrdered", r.ctx, code).Return([]model.Movie{}, nil).Once()
	r.rooms.On("FiltersByCode", r.ctx, code).Return(model.FilterCriteria{}, nil).Once()
	r.catalog.On("LoadAll", r.ctx).Return(sampleCatalog(), nil).Once()
	r.decks.On("Replace", r.ctx, code, mock.AnythingOfType("[]string")).
		Run(func(args mock.Arguments) {
			storedIDs = args.Get(2).([]string)
		}).
		Return(nil).Once()

	deck, err := r.usecase.Build(r.ctx, code)

	assert.NoError(t, err)
	assert.Len(t, deck, len(sampleCatalog()))

	// The stored order must be what the caller got back.
	ids := make([]string, len(deck))
	for i, m := range deck {
		ids[i] = m.ID
	}
	assert.Equal(t, ids, storedIDs)

	// And it must be a permutation of the catalog, nothing lost or invented.
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4", "m5"}, sorted)
}

func (suite *UsecaseDeckUnitSuite) TestBuildReusesStoredList(t provider.T) {
	t.Parallel()

	r := initResources(t)
	code := "ABC123"
	stored := []model.Movie{
		{ID: "m3", Title: "Spirited Away"},
		{ID: "m1", Title: "The Apartment"},
	}

	r.decks.On("LoadOrdered", r.ctx, code).Return(stored, nil).Once()

	deck, err := r.usecase.Build(r.ctx, code)

	assert.NoError(t, err)
	assert.Equal(t, stored, deck)
	r.catalog.AssertNotCalled(t, "LoadAll", r.ctx)
	r.decks.AssertNotCalled(t, "Replace", r.ctx, code, mock.Anything)
}

func (suite *UsecaseDeckUnitSuite) TestBuildEmptyCatalog(t provider.T) {
	t.Parallel()

	r := initResources(t)
	code := "ABC123"

	r.decks.On("LoadOrdered", r.ctx, code).Return([]model.Movie{}, nil).Once()
	r.rooms.On("FiltersByCode", r.ctx, code).Return(model.FilterCriteria{}, nil).Once()
	r.catalog.On("LoadAll", r.ctx).Return([]model.Movie{}, nil).Once()
	r.decks.On("Replace", r.ctx, code, []string{}).Return(nil).Once()

	deck, err := r.usecase.Build(r.ctx, code)

	assert.NoError(t, err)
	assert.Empty(t, deck)
}

func (suite *UsecaseDeckUnitSuite) TestBuildRoomNotFound(t provider.T) {
	t.Parallel()

	r := initResources(t)
	code := "NOROOM"

	r.decks.On("LoadOrdered", r.ctx, code).Return([]model.Movie{}, nil).Once()
	r.rooms.On("FiltersByCode", r.ctx, code).
		Return(model.FilterCriteria{}, usecase_room.ErrResourceNotFound).Once()

	deck, err := r.usecase.Build(r.ctx, code)

	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Nil(t, deck)
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseDeckUnitSuite))
}
