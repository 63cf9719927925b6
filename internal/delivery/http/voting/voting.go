package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/reelmate/core/internal/delivery/http/common"
	"github.com/reelmate/core/internal/model"
	usecase_deck "github.com/reelmate/core/internal/usecase/deck"
	usecase_swipe "github.com/reelmate/core/internal/usecase/swipe"
)

const userTokenHeader = "X-user-token"

type Controller struct {
	decks  *usecase_deck.Usecase
	swipes *usecase_swipe.Usecase
	logger *slog.Logger
}

func New(decks *usecase_deck.Usecase, swipes *usecase_swipe.Usecase) *Controller {
	return &Controller{
		decks:  decks,
		swipes: swipes,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.GET("/:room_id/deck", c.deck)
		rooms.POST("/:room_id/swipes", c.swipe)
		rooms.GET("/:room_id/matches", c.matches)
	}
}

type MovieDTO struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Overview   string   `json:"overview,omitempty"`
	PosterLink string   `json:"poster_link,omitempty"`
	Year       int      `json:"year,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	MPAA       string   `json:"mpaa_rating,omitempty"`
	Runtime    int      `json:"runtime_minutes,omitempty"`
}

func toMovieDTO(m model.Movie) MovieDTO {
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

func toMovieDTOs(movies []model.Movie) []MovieDTO {
	dtos := make([]MovieDTO, len(movies))
	for i, m := range movies {
		dtos[i] = toMovieDTO(m)
	}
	return dtos
}

type DeckResponseDTO struct {
	Movies []MovieDTO `json:"movies"`
}

// deck returns the room's candidate list, materializing it on first read.
// Both participants and every reload get the same stored order.
func (c *Controller) deck(ctx *gin.Context) {
	code := ctx.Param("room_id")

	movies, err := c.decks.Build(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_deck.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to build deck", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, DeckResponseDTO{
		Movies: toMovieDTOs(movies),
	})
}

type SwipeRequestDTO struct {
	MovieID   string `json:"movie_id" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=like dislike"`
}

func (c *Controller) swipe(ctx *gin.Context) {
	code := ctx.Param("room_id")

	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	userToken := ctx.GetHeader(userTokenHeader)
	if userToken == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-token not found",
		})
		return
	}
	userID, err := uuid.Parse(userToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "invalid X-user-token",
		})
		return
	}

	err = c.swipes.Record(ctx, code, userID, req.MovieID, model.Direction(req.Direction))
	if err != nil {
		switch {
		case errors.Is(err, usecase_swipe.ErrInvalidDirection):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid direction",
			})
		case errors.Is(err, usecase_swipe.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room or movie not found",
			})
		default:
			c.logger.Error("failed to record swipe", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusCreated)
}

type MatchesResponseDTO struct {
	Movies []MovieDTO `json:"movies"`
}

func (c *Controller) matches(ctx *gin.Context) {
	code := ctx.Param("room_id")

	movies, err := c.swipes.Matches(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_swipe.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to load matches", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, MatchesResponseDTO{
		Movies: toMovieDTOs(movies),
	})
}
