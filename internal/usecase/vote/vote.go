package usecase_vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/squabble-app/squabble/server/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrWrongPhase       = errors.New("operation not allowed in current game state")
	ErrAlreadyVoted     = errors.New("already voted this round")
	ErrSelfVote         = errors.New("cannot vote for your own song")
	ErrNoSong           = errors.New("target has no song selected")
)

const podiumSize = 3

//go:generate mockery --name=VoteRepository --output=./mocks/vote/repository --filename=repository.go
type VoteRepository interface {
	RoomByCode(ctx context.Context, code string) (model.Room, error)
	SetPlayerSong(ctx context.Context, code string, name string, song model.Song) error

	// CastVote atomically increments the target's counter and flips the
	// voter's voted flag in one transaction. Returns ErrAlreadyVoted when
	// the voter's flag was already set and ErrNoSong when the target has
	// no meaningful selection.
	CastVote(ctx context.Context, code string, voter string, target string) error

	Podium(ctx context.Context, code string, limit int) ([]model.PodiumEntry, error)
}

//go:generate mockery --name=EventPublisher --output=./mocks/vote/publisher --filename=publisher.go
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, roomCode string, payload map[string]any) error
}

type Usecase struct {
	VoteRepository VoteRepository
	Events         EventPublisher
}

func New(
	VoteRepository VoteRepository,
	Events EventPublisher,
) *Usecase {
	return &Usecase{
		VoteRepository: VoteRepository,
		Events:         Events,
	}
}

// SelectSong overwrites the caller's selection. Last write wins; lock-in
// is a client-side affordance, not server state.
func (u *Usecase) SelectSong(ctx context.Context, code string, name string, song model.Song) error {
	room, err := u.VoteRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if room.State != model.StateSelectingSongs {
		return ErrWrongPhase
	}

	if err := u.VoteRepository.SetPlayerSong(ctx, code, name, song); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	u.publish(ctx, "song_selected", code, map[string]any{
		"player": name,
		"title":  song.Title,
		"artist": song.Artist,
	})
	return nil
}

// Vote casts the voter's single vote of the round for target's song.
func (u *Usecase) Vote(ctx context.Context, code string, voter string, target string) error {
	if voter == target {
		return ErrSelfVote
	}

	room, err := u.VoteRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if room.State != model.StateVoteSongs {
		return ErrWrongPhase
	}

	if err := u.VoteRepository.CastVote(ctx, code, voter, target); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyVoted):
			return ErrAlreadyVoted
		case errors.Is(err, ErrNoSong):
			return ErrNoSong
		case errors.Is(err, ErrResourceNotFound):
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	u.publish(ctx, "vote_cast", code, map[string]any{
		"voter":  voter,
		"target": target,
	})
	return nil
}

// Podium returns the top songs of the round, most voted first.
// Equal vote counts order by player name ascending.
func (u *Usecase) Podium(ctx context.Context, code string) ([]model.PodiumEntry, error) {
	entries, err := u.VoteRepository.Podium(ctx, code, podiumSize)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("%w : %w", ErrInternal, err)
	}
	return entries, nil
}

func (u *Usecase) publish(ctx context.Context, eventType string, code string, payload map[string]any) {
	if u.Events == nil {
		return
	}
	_ = u.Events.Publish(ctx, eventType, code, payload)
}
