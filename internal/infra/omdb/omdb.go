// Package infra_omdb looks movies up in the OMDB HTTP API and maps its wire
// format onto canonical catalog records.
package infra_omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/reelmate/core/internal/config"
	"github.com/reelmate/core/internal/model"
	usecase_movie "github.com/reelmate/core/internal/usecase/movie"
)

type Client struct {
	http   *http.Client
	url    string
	apiKey string
	cache  Cache
	logger *slog.Logger
}

// Cache is a best-effort lookup cache; failures are logged, never surfaced.
type Cache interface {
	Get(title string, year int) (model.Movie, bool, error)
	Set(title string, year int, m model.Movie) error
}

func New(cfg config.OMDB, cache Cache) *Client {
	return &Client{
		http:   &http.Client{Timeout: 10 * time.Second},
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		cache:  cache,
		logger: slog.Default(),
	}
}

type ratingDTO struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type movieDTO struct {
	Title      string      `json:"Title"`
	Year       string      `json:"Year"`
	Rated      string      `json:"Rated"`
	Released   string      `json:"Released"`
	Runtime    string      `json:"Runtime"`
	Genre      string      `json:"Genre"`
	Plot       string      `json:"Plot"`
	Poster     string      `json:"Poster"`
	Ratings    []ratingDTO `json:"Ratings"`
	IMDBRating string      `json:"imdbRating"`
	IMDBID     string      `json:"imdbID"`
	Response   string      `json:"Response"`
	Error      string      `json:"Error"`
}

// Lookup resolves a title (plus optional year) to the provider's single best
// match. A miss comes back as usecase_movie.ErrLookupMiss; only transport
// and decoding problems are real errors.
func (c *Client) Lookup(ctx context.Context, title string, year int) (model.Movie, error) {
	if cached, ok, err := c.cache.Get(title, year); err != nil {
		c.logger.Warn("metadata cache read failed", "title", title, "error", err)
	} else if ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	if year != 0 {
		params.Set("y", strconv.Itoa(year))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return model.Movie{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Movie{}, fmt.Errorf("omdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Movie{}, fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	var dto movieDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return model.Movie{}, fmt.Errorf("failed to decode omdb response: %w", err)
	}

	// OMDB reports misses inside a 200 body.
	if dto.Response != "True" {
		return model.Movie{}, usecase_movie.ErrLookupMiss
	}

	m := dto.toDomain()
	if err := c.cache.Set(title, year, m); err != nil {
		c.logger.Warn("metadata cache write failed", "title", title, "error", err)
	}
	return m, nil
}

func (d movieDTO) toDomain() model.Movie {
	// Prefer the Rotten Tomatoes percentage, fall back to the IMDb 0-10
	// value; NormalizeRating puts both on the same scale.
	var rating *float64
	for _, r := range d.Ratings {
		if r.Source == "Rotten Tomatoes" {
			rating = model.NormalizeRating(r.Value)
			break
		}
	}
	if rating == nil {
		rating = model.NormalizeRating(d.IMDBRating)
	}

	poster := d.Poster
	if poster == "N/A" {
		poster = ""
	}
	mpaa := d.Rated
	if mpaa == "N/A" {
		mpaa = ""
	}

	return model.Movie{
		ID:         d.IMDBID,
		Title:      d.Title,
		Overview:   d.Plot,
		PosterLink: poster,
		Year:       model.ParseReleaseYear(d.Year),
		Genres:     model.SplitGenres(d.Genre),
		Rating:     rating,
		MPAA:       mpaa,
		Runtime:    model.ParseRuntimeMinutes(d.Runtime),
	}
}
