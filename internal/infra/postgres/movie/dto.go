package infra_postgres_movie

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/reelmate/core/internal/model"
)

// MovieDB mirrors the movies table, which keeps whatever encodings the
// ingester wrote. Normalization into model.Movie happens here, once per
// read, so the filter predicates never see raw formats.
type MovieDB struct {
	ID         string          `db:"id"`
	Title      string          `db:"title"`
	Overview   sql.NullString  `db:"overview"`
	PosterLink sql.NullString  `db:"poster_link"`
	// Release date may be "1980", "1980-01-01" or a bare number.
	ReleaseDate sql.NullString `db:"release_date"`
	// Genres may be a comma string or a JSON array string.
	Genres sql.NullString `db:"genres"`
	// RT rating may be "86%", "86" or "8.6"; IMDb is always 0-10.
	RTRating   sql.NullString  `db:"rt_rating"`
	IMDBRating sql.NullFloat64 `db:"imdb_rating"`
	MPAARating sql.NullString  `db:"mpaa_rating"`
	Runtime    sql.NullInt64   `db:"runtime_minutes"`
}

func (m *MovieDB) ToDomain() model.Movie {
	rating := model.NormalizeRating(m.RTRating.String)
	if rating == nil && m.IMDBRating.Valid {
		v := m.IMDBRating.Float64
		rating = &v
	}

	return model.Movie{
		ID:         m.ID,
		Title:      m.Title,
		Overview:   m.Overview.String,
		PosterLink: m.PosterLink.String,
		Year:       model.ParseReleaseYear(m.ReleaseDate.String),
		Genres:     model.SplitGenres(m.Genres.String),
		Rating:     rating,
		MPAA:       m.MPAARating.String,
		Runtime:    int(m.Runtime.Int64),
	}
}

// FromDomain writes canonical encodings; only raw ingested rows carry the
// legacy formats.
func FromDomain(m model.Movie) MovieDB {
	dto := MovieDB{
		ID:         m.ID,
		Title:      m.Title,
		Overview:   sql.NullString{String: m.Overview, Valid: m.Overview != ""},
		PosterLink: sql.NullString{String: m.PosterLink, Valid: m.PosterLink != ""},
		MPAARating: sql.NullString{String: m.MPAA, Valid: m.MPAA != ""},
		Runtime:    sql.NullInt64{Int64: int64(m.Runtime), Valid: m.Runtime != 0},
	}
	if m.Year != 0 {
		dto.ReleaseDate = sql.NullString{String: strconv.Itoa(m.Year), Valid: true}
	}
	if len(m.Genres) != 0 {
		dto.Genres = sql.NullString{String: strings.Join(m.Genres, ", "), Valid: true}
	}
	if m.Rating != nil {
		dto.RTRating = sql.NullString{String: fmt.Sprintf("%.1f", *m.Rating), Valid: true}
	}
	return dto
}
