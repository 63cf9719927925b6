package infra_postgres_movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/reelmate/core/internal/model"
	usecase_movie "github.com/reelmate/core/internal/usecase/movie"
)

const selectColumns = `id, title, overview, poster_link, release_date, genres, rt_rating, imdb_rating, mpaa_rating, runtime_minutes`

// batchSize caps a single catalog fetch; larger catalogs are read in pages
// and concatenated before filtering.
const batchSize = 1000

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Store(ctx context.Context, m model.Movie) error {
	dto := FromDomain(m)

	query := `
		INSERT INTO movies (id, title, overview, poster_link, release_date, genres, rt_rating, imdb_rating, mpaa_rating, runtime_minutes, last_updated)
		VALUES (:id, :title, :overview, :poster_link, :release_date, :genres, :rt_rating, :imdb_rating, :mpaa_rating, :runtime_minutes, now())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			overview = EXCLUDED.overview,
			poster_link = EXCLUDED.poster_link,
			release_date = EXCLUDED.release_date,
			genres = EXCLUDED.genres,
			rt_rating = EXCLUDED.rt_rating,
			imdb_rating = EXCLUDED.imdb_rating,
			mpaa_rating = EXCLUDED.mpaa_rating,
			runtime_minutes = EXCLUDED.runtime_minutes,
			last_updated = now()
	`

	if _, err := r.db.NamedExecContext(ctx, query, dto); err != nil {
		return fmt.Errorf("failed to store movie: %w", err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context) ([]model.Movie, error) {
	return r.LoadAll(ctx)
}

// LoadAll reads the whole catalog in pages of batchSize rows.
func (r *Repository) LoadAll(ctx context.Context) ([]model.Movie, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM movies`); err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	query := `
		SELECT ` + selectColumns + `
		FROM movies
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	movies := make([]model.Movie, 0, count)
	for offset := 0; offset < count; offset += batchSize {
		var batch []MovieDB
		if err := r.db.SelectContext(ctx, &batch, query, batchSize, offset); err != nil {
			return nil, fmt.Errorf("failed to query movies: %w", err)
		}
		for i := range batch {
			movies = append(movies, batch[i].ToDomain())
		}
	}
	return movies, nil
}

func (r *Repository) LoadByID(ctx context.Context, id string) (model.Movie, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM movies
		WHERE id = $1
	`

	var dto MovieDB
	if err := r.db.GetContext(ctx, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, usecase_movie.ErrMovieNotFound
		}
		return model.Movie{}, fmt.Errorf("failed to load movie by id: %w", err)
	}
	return dto.ToDomain(), nil
}

func (r *Repository) LoadByIDs(ctx context.Context, ids []string) ([]model.Movie, error) {
	if len(ids) == 0 {
		return []model.Movie{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+selectColumns+`
		FROM movies
		WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query = r.db.Rebind(query)
	var dtos []MovieDB
	if err := r.db.SelectContext(ctx, &dtos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query movies by ids: %w", err)
	}

	movies := make([]model.Movie, len(dtos))
	for i := range dtos {
		movies[i] = dtos[i].ToDomain()
	}
	return movies, nil
}

func (r *Repository) Update(ctx context.Context, m model.Movie) error {
	dto := FromDomain(m)

	query := `
		UPDATE movies SET
			title = :title,
			overview = :overview,
			poster_link = :poster_link,
			release_date = :release_date,
			genres = :genres,
			rt_rating = :rt_rating,
			imdb_rating = :imdb_rating,
			mpaa_rating = :mpaa_rating,
			runtime_minutes = :runtime_minutes,
			last_updated = now()
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, dto)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_movie.ErrMovieNotFound
	}
	return nil
}

func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_movie.ErrMovieNotFound
	}
	return nil
}
