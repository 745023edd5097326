package http_game

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/squabble-app/squabble/server/internal/delivery/http/common"
	http_session_middleware "github.com/squabble-app/squabble/server/internal/delivery/http/middleware/session"
	ws_room "github.com/squabble-app/squabble/server/internal/delivery/ws/room"
	"github.com/squabble-app/squabble/server/internal/model"
	usecase_game "github.com/squabble-app/squabble/server/internal/usecase/game"
)

type Controller struct {
	usecase   *usecase_game.Usecase
	hub       *ws_room.Hub
	sessionMW *http_session_middleware.Middleware
	logger    *slog.Logger
}

func New(usecase *usecase_game.Usecase, hub *ws_room.Hub, sessionMW *http_session_middleware.Middleware) *Controller {
	return &Controller{
		usecase:   usecase,
		hub:       hub,
		sessionMW: sessionMW,
		logger:    slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	game := router.Group("/rooms/:room_id/game")
	{
		game.GET("", c.state)
		game.POST("/start", c.sessionMW.SessionRequired(), c.start)
		game.PATCH("/state", c.sessionMW.SessionRequired(), c.advance)
		game.PATCH("/player-index", c.sessionMW.SessionRequired(), c.playerIndex)
	}
}

// StateResponseDTO is the authoritative room snapshot clients render from.
type StateResponseDTO struct {
	State              string `json:"state"`
	SelectedPrompt     string `json:"selected_prompt"`
	CurrentPlayerIndex int    `json:"current_player_index"`
	MaxPlayers         int    `json:"max_players"`
	HostName           string `json:"host_name"`
	Deadline           string `json:"deadline,omitempty"`
}

// State returns the room's game snapshot
// @Summary Get game state
// @Tags Game
// @Produce json
// @Param room_id path string true "Room code"
// @Success 200 {object} StateResponseDTO "Snapshot"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/game [get]
func (c *Controller) state(ctx *gin.Context) {
	code := ctx.Param("room_id")

	room, err := c.usecase.Room(ctx, code)
	if err != nil {
		c.logger.Error("failed to get game state", slog.String("error", err.Error()))
		if errors.Is(err, usecase_game.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dto := StateResponseDTO{
		State:              string(room.State),
		SelectedPrompt:     room.SelectedPrompt,
		CurrentPlayerIndex: room.CurrentPlayerIndex,
		MaxPlayers:         room.MaxPlayers,
		HostName:           room.HostName,
	}
	if room.PhaseDeadline != nil {
		dto.Deadline = room.PhaseDeadline.UTC().Format(time.RFC3339)
	}
	ctx.JSON(http.StatusOK, dto)
}

// StartResponseDTO returns the prompt chosen for the round.
type StartResponseDTO struct {
	Prompt string `json:"prompt"`
}

// Start begins the round
// @Summary Start the game
// @Tags Game
// @Produce json
// @Param room_id path string true "Room code"
// @Success 200 {object} StartResponseDTO "Round started"
// @Failure 401 {object} http_common.ErrorResponse "Not the host"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Not enough players or wrong phase"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/game/start [post]
func (c *Controller) start(ctx *gin.Context) {
	code := ctx.Param("room_id")

	actor := ctx.GetHeader("X-user-name")
	if actor == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-name not found",
		})
		return
	}

	prompt, err := c.usecase.Start(ctx, code, actor)
	if err != nil {
		c.logger.Error("failed to start game", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_game.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_game.ErrNotHost):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "unauthorized",
			})
		case errors.Is(err, usecase_game.ErrNotEnoughPlayers):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "Not enough players to start.",
			})
		case errors.Is(err, usecase_game.ErrIllegalTransition):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "illegal transition",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.notifyState(ctx, code)
	ctx.JSON(http.StatusOK, StartResponseDTO{Prompt: prompt})
}

// AdvanceRequestDTO names the state the caller wants the room to enter.
type AdvanceRequestDTO struct {
	State string `json:"state" binding:"required" enums:"displaySongs,voteSongs,podiumSongs,waiting"`
}

// Advance requests a game state transition
// @Summary Advance the game state
// @Tags Game
// @Accept json
// @Param room_id path string true "Room code"
// @Param request body AdvanceRequestDTO true "Requested state"
// @Success 204 "Transition committed (or already in that state)"
// @Failure 401 {object} http_common.ErrorResponse "Not allowed for this role"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Illegal transition or deadline not reached"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/game/state [patch]
func (c *Controller) advance(ctx *gin.Context) {
	code := ctx.Param("room_id")

	actor := ctx.GetHeader("X-user-name")
	if actor == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-name not found",
		})
		return
	}

	var req AdvanceRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.usecase.Advance(ctx, code, actor, model.GameState(req.State)); err != nil {
		c.logger.Error("failed to advance game state", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_game.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_game.ErrNotHost):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "unauthorized",
			})
		case errors.Is(err, usecase_game.ErrIllegalTransition), errors.Is(err, usecase_game.ErrDeadlineNotReached):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "illegal transition",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.notifyState(ctx, code)
	ctx.Status(http.StatusNoContent)
}

// PlayerIndexRequestDTO moves the "now playing" cursor.
type PlayerIndexRequestDTO struct {
	Index *int `json:"index" binding:"required"`
}

// PlayerIndex updates the display cursor
// @Summary Set current player index
// @Tags Game
// @Accept json
// @Param room_id path string true "Room code"
// @Param request body PlayerIndexRequestDTO true "New index"
// @Success 204 "Updated"
// @Failure 401 {object} http_common.ErrorResponse "Not the host"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Wrong phase"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/game/player-index [patch]
func (c *Controller) playerIndex(ctx *gin.Context) {
	code := ctx.Param("room_id")

	actor := ctx.GetHeader("X-user-name")
	if actor == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-name not found",
		})
		return
	}

	var req PlayerIndexRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Index == nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.usecase.SetCurrentPlayerIndex(ctx, code, actor, *req.Index); err != nil {
		c.logger.Error("failed to set player index", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_game.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_game.ErrNotHost):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "unauthorized",
			})
		case errors.Is(err, usecase_game.ErrIllegalTransition):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "wrong phase",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.hub.NotifyPlayerIndexChanged(code, *req.Index)
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) notifyState(ctx *gin.Context, code string) {
	room, err := c.usecase.Room(ctx, code)
	if err != nil {
		c.logger.Error("failed to load room for broadcast", slog.String("error", err.Error()))
		return
	}
	c.hub.NotifyStateChanged(code, room.State, room.PhaseDeadline)
}
