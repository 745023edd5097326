package http_session_middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/squabble-app/squabble/server/internal/delivery/http/common"
	"github.com/squabble-app/squabble/server/internal/model"
)

type SessionCache interface {
	Get(token string) (model.Session, error)
}

type Middleware struct {
	sessions SessionCache
	logger   *slog.Logger
}

func New(
	sessions SessionCache,
) *Middleware {
	return &Middleware{
		sessions: sessions,
		logger:   slog.Default(),
	}
}

// SessionRequired rejects requests without a live session token and
// requires the session to belong to the room being acted on.
func (m *Middleware) SessionRequired() gin.HandlerFunc {
	const header = "X-session-token"
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(header)
		if t == "" {
			m.logger.Error(fmt.Sprintf("no %s header", header))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no %s header", header),
			})
			ctx.Abort()
			return
		}

		session, err := m.sessions.Get(t)
		if err != nil {
			m.logger.Error("invalid session token", slog.String("error", err.Error()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid session",
			})
			ctx.Abort()
			return
		}

		if code := ctx.Param("room_id"); code != "" && session.RoomCode != code {
			m.logger.Error("session room mismatch",
				slog.String("session room", session.RoomCode),
				slog.String("requested room", code))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "session does not match room",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
