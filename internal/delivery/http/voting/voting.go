package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/squabble-app/squabble/server/internal/delivery/http/common"
	"github.com/squabble-app/squabble/server/internal/model"
	usecase_vote "github.com/squabble-app/squabble/server/internal/usecase/vote"
)

type Controller struct {
	uc *usecase_vote.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_vote.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	voting := router.Group("rooms/:room_id/voting")
	voting.PUT("/song", c.selectSong)
	voting.POST("/votes", c.vote)
	voting.GET("/results", c.votingResults)
}

// SongRequestDTO carries a song-search hit verbatim.
type SongRequestDTO struct {
	Title   string `json:"title" binding:"required"`
	Artist  string `json:"artist" binding:"required"`
	URI     string `json:"uri"`
	ID      string `json:"id"`
	Image   string `json:"image"`
	Preview string `json:"preview"`
}

// SelectSong stores the caller's pick for the round
// @Summary Select a song
// @Tags Voting
// @Accept json
// @Param room_id path string true "Room code"
// @Param request body SongRequestDTO true "Chosen song"
// @Success 204 "Stored"
// @Failure 401 {object} http_common.ErrorResponse "Missing identity"
// @Failure 404 {object} http_common.ErrorResponse "Room or player not found"
// @Failure 409 {object} http_common.ErrorResponse "Selection window closed"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/voting/song [put]
func (c *Controller) selectSong(ctx *gin.Context) {
	code := ctx.Param("room_id")

	actor := ctx.GetHeader("X-user-name")
	if actor == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-name not found",
		})
		return
	}

	var req SongRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	song := model.Song{
		Title:   req.Title,
		Artist:  req.Artist,
		URI:     req.URI,
		ID:      req.ID,
		Image:   req.Image,
		Preview: req.Preview,
	}

	if err := c.uc.SelectSong(ctx, code, actor, song); err != nil {
		c.logger.Error("failed to select song", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_vote.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_vote.ErrWrongPhase):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "selection window closed",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// VoteRequestDTO names the player whose song gets the vote.
type VoteRequestDTO struct {
	Target string `json:"target" binding:"required"`
}

// Vote casts the caller's single vote of the round
// @Summary Cast a vote
// @Tags Voting
// @Accept json
// @Param room_id path string true "Room code"
// @Param request body VoteRequestDTO true "Vote target"
// @Success 204 "Counted"
// @Failure 401 {object} http_common.ErrorResponse "Missing identity"
// @Failure 404 {object} http_common.ErrorResponse "Room or player not found"
// @Failure 409 {object} http_common.ErrorResponse "Already voted, self vote, no song, or wrong phase"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/voting/votes [post]
func (c *Controller) vote(ctx *gin.Context) {
	code := ctx.Param("room_id")

	actor := ctx.GetHeader("X-user-name")
	if actor == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-name not found",
		})
		return
	}

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.uc.Vote(ctx, code, actor, req.Target); err != nil {
		c.logger.Error("failed to cast vote", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_vote.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_vote.ErrAlreadyVoted):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "already voted this round",
			})
		case errors.Is(err, usecase_vote.ErrSelfVote):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "cannot vote for your own song",
			})
		case errors.Is(err, usecase_vote.ErrNoSong):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "target has no song",
			})
		case errors.Is(err, usecase_vote.ErrWrongPhase):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "voting window closed",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// PodiumEntryDTO is one row of the final leaderboard.
type PodiumEntryDTO struct {
	PlayerName string `json:"player_name"`
	Votes      int    `json:"votes"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Image      string `json:"image"`
	Preview    string `json:"preview"`
}

// VotingResults returns the top songs of the round
// @Summary Get the podium
// @Tags Voting
// @Produce json
// @Param room_id path string true "Room code"
// @Success 200 {array} PodiumEntryDTO "Ranked top songs"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_id}/voting/results [get]
func (c *Controller) votingResults(ctx *gin.Context) {
	code := ctx.Param("room_id")

	entries, err := c.uc.Podium(ctx, code)
	if err != nil {
		c.logger.Error("failed to get podium", slog.String("error", err.Error()))
		if errors.Is(err, usecase_vote.ErrResourceNotFound) {
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

	dtos := make([]PodiumEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, PodiumEntryDTO{
			PlayerName: e.PlayerName,
			Votes:      e.Votes,
			Title:      e.Song.Title,
			Artist:     e.Song.Artist,
			Image:      e.Song.Image,
			Preview:    e.Song.Preview,
		})
	}
	ctx.JSON(http.StatusOK, dtos)
}
