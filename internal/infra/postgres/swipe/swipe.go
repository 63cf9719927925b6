package infra_postgres_swipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	infra_postgres_movie "github.com/reelmate/core/internal/infra/postgres/movie"
	"github.com/reelmate/core/internal/infra/postgres/notify"
	"github.com/reelmate/core/internal/model"
	usecase_swipe "github.com/reelmate/core/internal/usecase/swipe"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// Upsert makes "first vote" and "change your vote" the same write: the
// unique (room, user, movie) key turns a repeat into an atomic direction
// update, so two near-simultaneous votes can never leave two live swipes.
func (d *Driver) Upsert(ctx context.Context, swipe model.Swipe) error {
	query := `
		INSERT INTO swipes (room_code, user_id, movie_id, direction)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_code, user_id, movie_id)
		DO UPDATE SET direction = EXCLUDED.direction, created_at = now()
	`

	_, err := d.db.ExecContext(ctx, query,
		swipe.RoomCode, swipe.UserID, swipe.MovieID, string(swipe.Direction))
	if err != nil {
		if isForeignKeyViolation(err) {
			return usecase_swipe.ErrResourceNotFound
		}
		return fmt.Errorf("failed to upsert swipe: %w", err)
	}
	return nil
}

func (d *Driver) CountLikes(ctx context.Context, code string, movieID string) (int, error) {
	var count int

	query := `
		SELECT COUNT(*)
		FROM swipes
		WHERE room_code = $1 AND movie_id = $2 AND direction = 'like'
	`

	if err := d.db.GetContext(ctx, &count, query, code, movieID); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// Create inserts the match and publishes match_created in one transaction.
// The (room, movie) uniqueness constraint makes concurrent detection
// idempotent: the loser's insert affects zero rows and publishes nothing.
func (d *Driver) Create(ctx context.Context, code string, movieID string) (bool, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO matches (room_code, movie_id)
		VALUES ($1, $2)
		ON CONFLICT (room_code, movie_id) DO NOTHING
	`

	result, err := tx.ExecContext(ctx, query, code, movieID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, usecase_swipe.ErrResourceNotFound
		}
		return false, fmt.Errorf("failed to create match: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, tx.Commit()
	}

	if err := notify.Publish(ctx, tx, notify.Event{
		Room:    code,
		Type:    notify.EventMatchCreated,
		MovieID: movieID,
	}); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// MatchedMovies hydrates the room's matches against the catalog, newest
// match first.
func (d *Driver) MatchedMovies(ctx context.Context, code string) ([]model.Movie, error) {
	query := `
		SELECT m.id, m.title, m.overview, m.poster_link, m.release_date, m.genres,
		       m.rt_rating, m.imdb_rating, m.mpaa_rating, m.runtime_minutes
		FROM matches mt
		JOIN movies m ON m.id = mt.movie_id
		WHERE mt.room_code = $1
		ORDER BY mt.created_at DESC
	`

	var dtos []infra_postgres_movie.MovieDB
	if err := d.db.SelectContext(ctx, &dtos, query, code); err != nil {
		return nil, fmt.Errorf("failed to load matched movies: %w", err)
	}

	movies := make([]model.Movie, len(dtos))
	for i := range dtos {
		movies[i] = dtos[i].ToDomain()
	}
	return movies, nil
}
