package http_session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/squabble-app/squabble/server/internal/delivery/http/common"
	infra_session_cache "github.com/squabble-app/squabble/server/internal/infra/redis/session"
)

// Controller resolves the session tokens handed out on room create/join,
// so a restarted client can find its way back to the right screen.
type Controller struct {
	sessions *infra_session_cache.Driver
	logger   *slog.Logger
}

func New(sessions *infra_session_cache.Driver) *Controller {
	return &Controller{
		sessions: sessions,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	sessions.GET("/:token", c.get)
	sessions.DELETE("/:token", c.delete)
}

// SessionResponseDTO mirrors what the app used to keep in device storage.
type SessionResponseDTO struct {
	UserName string `json:"user_name"`
	RoomCode string `json:"room_code"`
	IsHost   bool   `json:"is_host"`
}

// Get resolves a session token
// @Summary Resolve a session
// @Tags Sessions
// @Produce json
// @Param token path string true "Session token"
// @Success 200 {object} SessionResponseDTO "Session"
// @Failure 404 {object} http_common.ErrorResponse "Unknown token"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /sessions/{token} [get]
func (c *Controller) get(ctx *gin.Context) {
	token := ctx.Param("token")

	session, err := c.sessions.Get(token)
	if err != nil {
		if errors.Is(err, infra_session_cache.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, SessionResponseDTO{
		UserName: session.UserName,
		RoomCode: session.RoomCode,
		IsHost:   session.IsHost,
	})
}

// Delete drops a session token
// @Summary Delete a session
// @Tags Sessions
// @Param token path string true "Session token"
// @Success 204 "Deleted"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /sessions/{token} [delete]
func (c *Controller) delete(ctx *gin.Context) {
	token := ctx.Param("token")

	if err := c.sessions.Delete(token); err != nil {
		c.logger.Error("failed to delete session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}
