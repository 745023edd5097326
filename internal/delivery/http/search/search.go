package http_search

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/squabble-app/squabble/server/internal/delivery/http/common"
	usecase_search "github.com/squabble-app/squabble/server/internal/usecase/search"
)

type Controller struct {
	usecase *usecase_search.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_search.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/songs/search", c.search)
}

// TrackDTO is a catalog hit ready to be stored as a selection.
type TrackDTO struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	URI     string `json:"uri"`
	ID      string `json:"id"`
	Image   string `json:"image"`
	Preview string `json:"preview"`
}

// Search proxies the song catalog search
// @Summary Search songs
// @Tags Songs
// @Produce json
// @Param q query string true "Free-text query"
// @Success 200 {array} TrackDTO "First page of hits"
// @Failure 400 {object} http_common.ErrorResponse "Empty query"
// @Failure 502 {object} http_common.ErrorResponse "Catalog unavailable"
// @Router /songs/search [get]
func (c *Controller) search(ctx *gin.Context) {
	query := ctx.Query("q")

	songs, err := c.usecase.Search(ctx, query)
	if err != nil {
		if errors.Is(err, usecase_search.ErrEmptyQuery) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "empty query",
			})
			return
		}
		c.logger.Error("song search failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "search unavailable",
		})
		return
	}

	dtos := make([]TrackDTO, 0, len(songs))
	for _, s := range songs {
		dtos = append(dtos, TrackDTO{
			Title:   s.Title,
			Artist:  s.Artist,
			URI:     s.URI,
			ID:      s.ID,
			Image:   s.Image,
			Preview: s.Preview,
		})
	}
	ctx.JSON(http.StatusOK, dtos)
}
