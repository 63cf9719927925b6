package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/reelmate/core/internal/delivery/http/common"
	"github.com/reelmate/core/internal/model"
	usecase_room "github.com/reelmate/core/internal/usecase/room"
)

const userTokenHeader = "X-user-token"

type Controller struct {
	usecase *usecase_room.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_room.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.POST("/:room_id/join", c.join)
		rooms.GET("/:room_id/status", c.status)
		rooms.PUT("/:room_id/filters", c.applyFilters)
		rooms.DELETE("/:room_id", c.free)
	}
}

type CreateResponseDTO struct {
	RoomCode string `json:"room_code"`
}

func (c *Controller) create(ctx *gin.Context) {
	roomCode, ownerToken, err := c.usecase.Create(ctx)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrRoomsUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "could not allocate room code",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Header(userTokenHeader, ownerToken)
	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		RoomCode: roomCode,
	})
}

type JoinResponseDTO struct {
	UserID string `json:"user_id"`
}

// join admits the caller into the room. A missing token means a fresh
// participant: one is minted and echoed in the response header.
func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("room_id")

	userID, ok := resolveUserToken(ctx)
	if !ok {
		return
	}

	err := c.usecase.Join(ctx, code, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
		case errors.Is(err, usecase_room.ErrRoomFull):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room full",
			})
		default:
			c.logger.Error("failed to join room", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Header(userTokenHeader, userID.String())
	ctx.JSON(http.StatusOK, JoinResponseDTO{
		UserID: userID.String(),
	})
}

type StatusResponseDTO struct {
	Status string `json:"status"`
}

func (c *Controller) status(ctx *gin.Context) {
	code := ctx.Param("room_id")

	status, err := c.usecase.Status(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to get status", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, StatusResponseDTO{
		Status: status,
	})
}

// applyFilters persists new criteria and invalidates the room's candidate
// list, so the next deck read re-materializes under the new filters.
func (c *Controller) applyFilters(ctx *gin.Context) {
	code := ctx.Param("room_id")

	var criteria model.FilterCriteria
	if err := ctx.ShouldBindJSON(&criteria); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if !c.authorizeParticipant(ctx, code) {
		return
	}

	if err := c.usecase.ApplyFilters(ctx, code, criteria); err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to apply filters", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) free(ctx *gin.Context) {
	code := ctx.Param("room_id")

	if !c.authorizeParticipant(ctx, code) {
		return
	}

	if err := c.usecase.Free(ctx, code); err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to free room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) authorizeParticipant(ctx *gin.Context, code string) bool {
	userToken := ctx.GetHeader(userTokenHeader)
	if userToken == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-token not found",
		})
		return false
	}
	userID, err := uuid.Parse(userToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "invalid X-user-token",
		})
		return false
	}

	isParticipant, err := c.usecase.IsParticipant(ctx, code, userID)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return false
		}
		c.logger.Error("failed to check participant", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return false
	}
	if !isParticipant {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "unauthorized",
		})
		return false
	}
	return true
}

// resolveUserToken parses the caller's token or mints one for first contact.
func resolveUserToken(ctx *gin.Context) (uuid.UUID, bool) {
	userToken := ctx.GetHeader(userTokenHeader)
	if userToken == "" {
		return uuid.New(), true
	}

	userID, err := uuid.Parse(userToken)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid X-user-token",
		})
		return uuid.Nil, false
	}
	return userID, true
}
