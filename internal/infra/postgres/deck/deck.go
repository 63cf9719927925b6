package infra_postgres_deck

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	infra_postgres_movie "github.com/reelmate/core/internal/infra/postgres/movie"
	"github.com/reelmate/core/internal/model"
)

// insertBatchSize bounds one bulk insert to respect payload limits.
const insertBatchSize = 100

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type entryDTO struct {
	RoomCode string `db:"room_code"`
	MovieID  string `db:"movie_id"`
	Position int    `db:"position"`
}

// LoadOrdered hydrates the room's stored candidate list by joining against
// the catalog, preserving stored position order.
func (d *Driver) LoadOrdered(ctx context.Context, code string) ([]model.Movie, error) {
	query := `
		SELECT m.id, m.title, m.overview, m.poster_link, m.release_date, m.genres,
		       m.rt_rating, m.imdb_rating, m.mpaa_rating, m.runtime_minutes
		FROM room_movies rm
		JOIN movies m ON m.id = rm.movie_id
		WHERE rm.room_code = $1
		ORDER BY rm.position ASC
	`

	var dtos []infra_postgres_movie.MovieDB
	if err := d.db.SelectContext(ctx, &dtos, query, code); err != nil {
		return nil, fmt.Errorf("failed to load candidate list: %w", err)
	}

	movies := make([]model.Movie, len(dtos))
	for i := range dtos {
		movies[i] = dtos[i].ToDomain()
	}
	return movies, nil
}

// Replace rewrites the room's candidate list with positions 0..n-1. The
// delete and the batched inserts share one transaction, so readers never see
// a half-written permutation.
func (d *Driver) Replace(ctx context.Context, code string, movieIDs []string) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM room_movies WHERE room_code = $1`, code); err != nil {
		return fmt.Errorf("failed to clear candidate list: %w", err)
	}

	query := `
		INSERT INTO room_movies (room_code, movie_id, position)
		VALUES (:room_code, :movie_id, :position)
	`

	for start := 0; start < len(movieIDs); start += insertBatchSize {
		end := min(start+insertBatchSize, len(movieIDs))

		batch := make([]entryDTO, 0, end-start)
		for pos := start; pos < end; pos++ {
			batch = append(batch, entryDTO{
				RoomCode: code,
				MovieID:  movieIDs[pos],
				Position: pos,
			})
		}
		if _, err := tx.NamedExecContext(ctx, query, batch); err != nil {
			return fmt.Errorf("failed to store candidate batch: %w", err)
		}
	}

	return tx.Commit()
}

func (d *Driver) Clear(ctx context.Context, code string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM room_movies WHERE room_code = $1`, code); err != nil {
		return fmt.Errorf("failed to clear candidate list: %w", err)
	}
	return nil
}
