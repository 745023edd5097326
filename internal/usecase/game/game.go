package usecase_game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/squabble-app/squabble/server/internal/model"
)

var (
	ErrInternal           = errors.New("internal error")
	ErrResourceNotFound   = errors.New("no such resource")
	ErrNotHost            = errors.New("only the host may do that")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrIllegalTransition  = errors.New("illegal game state transition")
	ErrDeadlineNotReached = errors.New("phase deadline not reached")
)

//go:generate mockery --name=GameRepository --output=./mocks/game/repository --filename=repository.go
type GameRepository interface {
	RoomByCode(ctx context.Context, code string) (model.Room, error)
	PlayersCount(ctx context.Context, code string) (int, error)
	SetState(ctx context.Context, code string, state model.GameState, deadline *time.Time) error
	SetPrompt(ctx context.Context, code string, prompt string) error
	SetCurrentPlayerIndex(ctx context.Context, code string, index int) error

	// ResetRound zeroes every player's votes, voted flag and song fields.
	ResetRound(ctx context.Context, code string) error
}

//go:generate mockery --name=EventPublisher --output=./mocks/game/publisher --filename=publisher.go
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, roomCode string, payload map[string]any) error
}

// PromptMemory remembers which prompts a room already played. Optional;
// without it every round draws from the full list.
type PromptMemory interface {
	Used(ctx context.Context, roomCode string) ([]string, error)
	MarkUsed(ctx context.Context, roomCode string, prompt string) error
	Clear(ctx context.Context, roomCode string) error
}

type Usecase struct {
	GameRepository GameRepository
	Events         EventPublisher
	Memory         PromptMemory

	selectionWindow time.Duration
	voteWindow      time.Duration

	prompts []string
}

func New(
	GameRepository GameRepository,
	Events EventPublisher,
	selectionWindow time.Duration,
	voteWindow time.Duration,
) *Usecase {
	if selectionWindow <= 0 {
		selectionWindow = 30 * time.Second
	}
	if voteWindow <= 0 {
		voteWindow = 15 * time.Second
	}

	return &Usecase{
		GameRepository:  GameRepository,
		Events:          Events,
		selectionWindow: selectionWindow,
		voteWindow:      voteWindow,
		prompts:         model.Prompts,
	}
}

func (u *Usecase) WithPromptMemory(memory PromptMemory) *Usecase {
	u.Memory = memory
	return u
}

func (u *Usecase) Room(ctx context.Context, code string) (model.Room, error) {
	room, err := u.GameRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

// Start moves a waiting room into song selection. Host only, two players
// minimum. Picks the round prompt and wipes the previous round's votes
// and selections before committing the transition.
func (u *Usecase) Start(ctx context.Context, code string, actor string) (string, error) {
	room, err := u.GameRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return "", ErrResourceNotFound
		}
		return "", errors.Join(ErrInternal, err)
	}

	if room.HostName != actor {
		return "", ErrNotHost
	}
	if !room.State.CanTransitionTo(model.StateSelectingSongs) {
		return "", ErrIllegalTransition
	}

	count, err := u.GameRepository.PlayersCount(ctx, code)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	if count < 2 {
		return "", ErrNotEnoughPlayers
	}

	prompt := u.pickPrompt(ctx, code)
	if err := u.GameRepository.SetPrompt(ctx, code, prompt); err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	if err := u.GameRepository.ResetRound(ctx, code); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	deadline := time.Now().Add(u.selectionWindow)
	if err := u.GameRepository.SetState(ctx, code, model.StateSelectingSongs, &deadline); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	u.publish(ctx, "game_started", code, map[string]any{"prompt": prompt})
	return prompt, nil
}

// Advance requests the transition room.State -> to on behalf of actor.
// Advancing into the state the room is already in is a no-op, which
// absorbs the duplicate-expiry race between clients.
func (u *Usecase) Advance(ctx context.Context, code string, actor string, to model.GameState) error {
	if !to.Valid() {
		return ErrIllegalTransition
	}

	room, err := u.GameRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	if room.State == to {
		return nil
	}
	if !room.State.CanTransitionTo(to) {
		return ErrIllegalTransition
	}
	// Entering song selection resets the round; that path goes through Start.
	if to == model.StateSelectingSongs {
		return ErrIllegalTransition
	}

	if room.State.HostOnly() {
		if room.HostName != actor {
			return ErrNotHost
		}
	} else if room.PhaseDeadline != nil && time.Now().Before(*room.PhaseDeadline) {
		return ErrDeadlineNotReached
	}

	var deadline *time.Time
	switch to {
	case model.StateVoteSongs:
		d := time.Now().Add(u.voteWindow)
		deadline = &d
	case model.StateDisplaySongs, model.StateWaiting:
		if err := u.GameRepository.SetCurrentPlayerIndex(ctx, code, 0); err != nil {
			return errors.Join(ErrInternal, err)
		}
	}

	if err := u.GameRepository.SetState(ctx, code, to, deadline); err != nil {
		return errors.Join(ErrInternal, err)
	}

	eventType := "state_changed"
	if to == model.StateWaiting {
		eventType = "round_finished"
	}
	u.publish(ctx, eventType, code, map[string]any{"state": string(to)})
	return nil
}

// SetCurrentPlayerIndex moves the "now playing" cursor while songs are
// being revealed on the host device.
func (u *Usecase) SetCurrentPlayerIndex(ctx context.Context, code string, actor string, index int) error {
	if index < 0 {
		return ErrIllegalTransition
	}

	room, err := u.GameRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if room.HostName != actor {
		return ErrNotHost
	}
	if room.State != model.StateDisplaySongs {
		return ErrIllegalTransition
	}

	if err := u.GameRepository.SetCurrentPlayerIndex(ctx, code, index); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// pickPrompt draws a prompt the room has not played yet. Memory failures
// degrade to drawing from the full list.
func (u *Usecase) pickPrompt(ctx context.Context, code string) string {
	pool := u.prompts
	if u.Memory != nil {
		if used, err := u.Memory.Used(ctx, code); err == nil && len(used) > 0 {
			seen := make(map[string]struct{}, len(used))
			for _, p := range used {
				seen[p] = struct{}{}
			}
			fresh := make([]string, 0, len(u.prompts))
			for _, p := range u.prompts {
				if _, ok := seen[p]; !ok {
					fresh = append(fresh, p)
				}
			}
			if len(fresh) > 0 {
				pool = fresh
			} else {
				_ = u.Memory.Clear(ctx, code)
			}
		}
	}

	prompt := pool[rand.Intn(len(pool))]
	if u.Memory != nil {
		_ = u.Memory.MarkUsed(ctx, code, prompt)
	}
	return prompt
}

func (u *Usecase) publish(ctx context.Context, eventType string, code string, payload map[string]any) {
	if u.Events == nil {
		return
	}
	// Event delivery failures must not fail the game action.
	_ = u.Events.Publish(ctx, eventType, code, payload)
}
