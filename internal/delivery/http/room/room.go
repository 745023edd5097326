package http_room

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/squabble-app/squabble/server/internal/delivery/http/common"
	ws_room "github.com/squabble-app/squabble/server/internal/delivery/ws/room"
	infra_session_cache "github.com/squabble-app/squabble/server/internal/infra/redis/session"
	"github.com/squabble-app/squabble/server/internal/model"
	usecase_room "github.com/squabble-app/squabble/server/internal/usecase/room"
)

const sessionTTL = 24 * time.Hour

type Controller struct {
	usecase  *usecase_room.Usecase
	sessions *infra_session_cache.Driver
	hub      *ws_room.Hub
	logger   *slog.Logger
}

func New(usecase *usecase_room.Usecase, sessions *infra_session_cache.Driver, hub *ws_room.Hub) *Controller {
	return &Controller{
		usecase:  usecase,
		sessions: sessions,
		hub:      hub,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_id/players", c.players)
		rooms.POST("/:room_id/players", c.join)
		rooms.DELETE("/:room_id/players/:player_name", c.removePlayer)
		rooms.DELETE("/:room_id", c.delete)
	}
}

// CreateRequestDTO carries the host's chosen display name.
type CreateRequestDTO struct {
	UserName string `json:"user_name" binding:"required"`
}

// CreateResponseDTO returns the shareable room code.
type CreateResponseDTO struct {
	RoomCode string `json:"room_code"`
}

// Create opens a new room with the caller as host
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body CreateRequestDTO true "Host name"
// @Success 201 {object} CreateResponseDTO "Room created"
// @Header 201 {string} X-session-token "Session token"
// @Failure 400 {object} http_common.ErrorResponse "Bad username"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Failure 503 {object} http_common.ErrorResponse "No free room codes"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	roomCode, err := c.usecase.Create(ctx, req.UserName)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrBadUsername):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "bad username",
			})
		case errors.Is(err, usecase_room.ErrRoomsUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.issueSession(ctx, req.UserName, roomCode, true)
	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		RoomCode: roomCode,
	})
}

// JoinRequestDTO carries the joining player's display name.
type JoinRequestDTO struct {
	UserName string `json:"user_name" binding:"required"`
}

// JoinResponseDTO mirrors the app's join result message.
type JoinResponseDTO struct {
	Message string `json:"message"`
}

// Join adds a player to a room
// @Summary Join a room by code
// @Tags Rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room code"
// @Param request body JoinRequestDTO true "Player name"
// @Success 201 {object} JoinResponseDTO "Joined"
// @Header 201 {string} X-session-token "Session token"
// @Failure 400 {object} http_common.ErrorResponse "Bad username or code"
// @Failure 404 {object} http_common.ErrorResponse "Invalid code"
// @Failure 409 {object} http_common.ErrorResponse "Room full"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/players [post]
func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("room_id")

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.usecase.Join(ctx, code, req.UserName); err != nil {
		c.logger.Error("failed to join room", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrBadUsername), errors.Is(err, usecase_room.ErrBadRoomCode):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "bad username or room code",
			})
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "Invalid code",
			})
		case errors.Is(err, usecase_room.ErrRoomFull):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "Room full!",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.issueSession(ctx, req.UserName, code, false)
	c.hub.NotifyUserJoined(code)
	ctx.JSON(http.StatusCreated, JoinResponseDTO{Message: "Joined!"})
}

// PlayerDTO is a lobby roster entry.
type PlayerDTO struct {
	Name  string   `json:"name"`
	Votes int      `json:"votes"`
	Song  *SongDTO `json:"song,omitempty"`
}

// SongDTO mirrors a stored song selection.
type SongDTO struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	URI     string `json:"uri"`
	ID      string `json:"id"`
	Image   string `json:"image"`
	Preview string `json:"preview"`
}

// Players lists the room roster in join order
// @Summary List room players
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room code"
// @Success 200 {array} PlayerDTO "Roster"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/players [get]
func (c *Controller) players(ctx *gin.Context) {
	code := ctx.Param("room_id")

	players, err := c.usecase.Players(ctx, code)
	if err != nil {
		c.logger.Error("failed to list players", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
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

	dtos := make([]PlayerDTO, 0, len(players))
	for _, p := range players {
		dto := PlayerDTO{Name: p.Name, Votes: p.Votes}
		if !p.Song.Empty() {
			dto.Song = &SongDTO{
				Title:   p.Song.Title,
				Artist:  p.Song.Artist,
				URI:     p.Song.URI,
				ID:      p.Song.ID,
				Image:   p.Song.Image,
				Preview: p.Song.Preview,
			}
		}
		dtos = append(dtos, dto)
	}
	ctx.JSON(http.StatusOK, dtos)
}

// RemovePlayer removes a player from a room
// @Summary Remove a player
// @Tags Rooms
// @Param room_id path string true "Room code"
// @Param player_name path string true "Player name"
// @Success 204 "Removed"
// @Failure 401 {object} http_common.ErrorResponse "Not allowed"
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/players/{player_name} [delete]
func (c *Controller) removePlayer(ctx *gin.Context) {
	code := ctx.Param("room_id")
	name := ctx.Param("player_name")

	actor := ctx.GetHeader("X-user-name")
	if actor == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-name not found",
		})
		return
	}

	if actor != name {
		isHost, err := c.usecase.IsHost(ctx, code, actor)
		if err != nil || !isHost {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "unauthorized",
			})
			return
		}
	}

	if err := c.usecase.Leave(ctx, code, name); err != nil {
		c.logger.Error("failed to remove player", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
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

	c.hub.NotifyUserJoined(code)
	ctx.Status(http.StatusNoContent)
}

// Delete removes the whole room
// @Summary Delete a room
// @Tags Rooms
// @Param room_id path string true "Room code"
// @Success 204 "Deleted"
// @Failure 401 {object} http_common.ErrorResponse "Not the host"
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id} [delete]
func (c *Controller) delete(ctx *gin.Context) {
	code := ctx.Param("room_id")

	actor := ctx.GetHeader("X-user-name")
	if actor == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-name not found",
		})
		return
	}

	isHost, err := c.usecase.IsHost(ctx, code, actor)
	if err != nil {
		c.logger.Error("failed to delete room", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
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
	if !isHost {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "unauthorized",
		})
		return
	}

	if err := c.usecase.Delete(ctx, code); err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
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

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) issueSession(ctx *gin.Context, userName, roomCode string, isHost bool) {
	if c.sessions == nil {
		return
	}

	token := uuid.New().String()
	session := model.Session{
		UserName: userName,
		RoomCode: roomCode,
		IsHost:   isHost,
	}
	if err := c.sessions.Set(token, session, sessionTTL); err != nil {
		// The caller can still play without a resumable session.
		c.logger.Error("failed to store session", slog.String("error", err.Error()))
		return
	}
	ctx.Header("X-session-token", token)
}
