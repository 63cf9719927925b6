package usecase_movie

import (
	"context"
	"errors"
	"fmt"

	"github.com/reelmate/core/internal/model"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrLookupMiss          = errors.New("no metadata found")
	ErrFailedToStoreMovie  = errors.New("failed to store movie")
	ErrFailedToLoadMovies  = errors.New("failed to load movies")
	ErrFailedToLookupMovie = errors.New("metadata lookup failed")
)

type Repository interface {
	Store(ctx context.Context, m model.Movie) error
	Load(ctx context.Context) ([]model.Movie, error)
	LoadByID(ctx context.Context, id string) (model.Movie, error)
	Update(ctx context.Context, m model.Movie) error
	DeleteByID(ctx context.Context, id string) error
}

// MetadataProvider resolves a title (plus optional year) to a single best
// match. A miss is ErrLookupMiss, not a transport failure.
type MetadataProvider interface {
	Lookup(ctx context.Context, title string, year int) (model.Movie, error)
}

type Usecase struct {
	repository Repository
	metadata   MetadataProvider
}

func New(repository Repository, metadata MetadataProvider) *Usecase {
	return &Usecase{
		repository: repository,
		metadata:   metadata,
	}
}

func (u *Usecase) Add(ctx context.Context, m model.Movie) error {
	if m.Title == model.EmptyTitle {
		return fmt.Errorf("%w: movie title cannot be empty", ErrInvalidInput)
	}
	if m.ID == "" {
		return fmt.Errorf("%w: movie id cannot be empty", ErrInvalidInput)
	}

	if err := u.repository.Store(ctx, m); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToStoreMovie, err)
	}
	return nil
}

func (u *Usecase) Load(ctx context.Context) ([]model.Movie, error) {
	movies, err := u.repository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadMovies, err)
	}
	return movies, nil
}

func (u *Usecase) GetByID(ctx context.Context, id string) (model.Movie, error) {
	m, err := u.repository.LoadByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return model.Movie{}, ErrMovieNotFound
		}
		return model.Movie{}, fmt.Errorf("%w: %w", ErrFailedToLoadMovies, err)
	}
	return m, nil
}

func (u *Usecase) Update(ctx context.Context, m model.Movie) error {
	if err := u.repository.Update(ctx, m); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("%w: %w", ErrFailedToStoreMovie, err)
	}
	return nil
}

func (u *Usecase) Delete(ctx context.Context, id string) error {
	if err := u.repository.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return nil
}

// Lookup queries the external metadata provider without touching the catalog.
func (u *Usecase) Lookup(ctx context.Context, title string, year int) (model.Movie, error) {
	if title == model.EmptyTitle {
		return model.Movie{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	m, err := u.metadata.Lookup(ctx, title, year)
	if err != nil {
		if errors.Is(err, ErrLookupMiss) {
			return model.Movie{}, ErrLookupMiss
		}
		return model.Movie{}, fmt.Errorf("%w: %w", ErrFailedToLookupMovie, err)
	}
	return m, nil
}

// RefreshMetadata re-resolves a stored movie by title/year and overwrites its
// mutable fields. The id stays stable across refreshes.
func (u *Usecase) RefreshMetadata(ctx context.Context, id string) (model.Movie, error) {
	stored, err := u.GetByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}

	fresh, err := u.metadata.Lookup(ctx, stored.Title, stored.Year)
	if err != nil {
		if errors.Is(err, ErrLookupMiss) {
			return model.Movie{}, ErrLookupMiss
		}
		return model.Movie{}, fmt.Errorf("%w: %w", ErrFailedToLookupMovie, err)
	}

	fresh.ID = stored.ID
	if err := u.repository.Update(ctx, fresh); err != nil {
		return model.Movie{}, fmt.Errorf("%w: %w", ErrFailedToStoreMovie, err)
	}
	return fresh, nil
}
