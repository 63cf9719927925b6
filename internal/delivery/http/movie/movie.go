package http_movie

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/reelmate/core/internal/delivery/http/common"
	"github.com/reelmate/core/internal/model"
	usecase_movie "github.com/reelmate/core/internal/usecase/movie"
)

type Controller struct {
	usecase *usecase_movie.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_movie.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	{
		movies.GET("", c.list)
		movies.POST("", c.add)
		movies.GET("/lookup", c.lookup)
		movies.GET("/:movie_id", c.get)
		movies.PUT("/:movie_id", c.update)
		movies.DELETE("/:movie_id", c.delete)
		movies.POST("/:movie_id/refresh", c.refresh)
	}
}

type MovieDTO struct {
	ID         string   `json:"id" binding:"required"`
	Title      string   `json:"title" binding:"required"`
	Overview   string   `json:"overview,omitempty"`
	PosterLink string   `json:"poster_link,omitempty"`
	Year       int      `json:"year,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	MPAA       string   `json:"mpaa_rating,omitempty"`
	Runtime    int      `json:"runtime_minutes,omitempty"`
}

func (d MovieDTO) toDomain() model.Movie {
	return model.Movie{
		ID:         d.ID,
		Title:      d.Title,
		Overview:   d.Overview,
		PosterLink: d.PosterLink,
		Year:       d.Year,
		Genres:     d.Genres,
		Rating:     d.Rating,
		MPAA:       d.MPAA,
		Runtime:    d.Runtime,
	}
}

func fromDomain(m model.Movie) MovieDTO {
	return MovieDTO{
		ID:         m.ID,
		Title:      m.Title,
		Overview:   m.Overview,
		PosterLink: m.PosterLink,
		Year:       m.Year,
		Genres:     m.Genres,
		Rating:     m.Rating,
		MPAA:       m.MPAA,
		Runtime:    m.Runtime,
	}
}

func (c *Controller) list(ctx *gin.Context) {
	movies, err := c.usecase.Load(ctx)
	if err != nil {
		c.logger.Error("failed to list movies", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dtos := make([]MovieDTO, len(movies))
	for i, m := range movies {
		dtos[i] = fromDomain(m)
	}
	ctx.JSON(http.StatusOK, dtos)
}

func (c *Controller) add(ctx *gin.Context) {
	var req MovieDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.usecase.Add(ctx, req.toDomain()); err != nil {
		if errors.Is(err, usecase_movie.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid movie",
			})
			return
		}
		c.logger.Error("failed to add movie", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusCreated)
}

// lookup queries the external metadata provider without touching the
// catalog; clients use it to prefill the add-movie form.
func (c *Controller) lookup(ctx *gin.Context) {
	title := ctx.Query("title")
	if title == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "title is required",
		})
		return
	}
	year, _ := strconv.Atoi(ctx.Query("year"))

	m, err := c.usecase.Lookup(ctx, title, year)
	if err != nil {
		if errors.Is(err, usecase_movie.ErrLookupMiss) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "no metadata found",
			})
			return
		}
		c.logger.Error("metadata lookup failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, fromDomain(m))
}

func (c *Controller) get(ctx *gin.Context) {
	m, err := c.usecase.GetByID(ctx, ctx.Param("movie_id"))
	if err != nil {
		if errors.Is(err, usecase_movie.ErrMovieNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "movie not found",
			})
			return
		}
		c.logger.Error("failed to get movie", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, fromDomain(m))
}

func (c *Controller) update(ctx *gin.Context) {
	var req MovieDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}
	req.ID = ctx.Param("movie_id")

	if err := c.usecase.Update(ctx, req.toDomain()); err != nil {
		if errors.Is(err, usecase_movie.ErrMovieNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "movie not found",
			})
			return
		}
		c.logger.Error("failed to update movie", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) delete(ctx *gin.Context) {
	if err := c.usecase.Delete(ctx, ctx.Param("movie_id")); err != nil {
		if errors.Is(err, usecase_movie.ErrMovieNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "movie not found",
			})
			return
		}
		c.logger.Error("failed to delete movie", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// refresh re-resolves the movie's metadata from the external provider; the
// periodic catalog refresher drives the same path.
func (c *Controller) refresh(ctx *gin.Context) {
	m, err := c.usecase.RefreshMetadata(ctx, ctx.Param("movie_id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase_movie.ErrMovieNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "movie not found",
			})
		case errors.Is(err, usecase_movie.ErrLookupMiss):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "no metadata found",
			})
		default:
			c.logger.Error("failed to refresh movie", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, fromDomain(m))
}
