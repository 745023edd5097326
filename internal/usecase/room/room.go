package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/squabble-app/squabble/server/internal/model"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrRoomsUnavailable = errors.New("no available rooms")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrRoomFull         = errors.New("room full")
	ErrBadUsername      = errors.New("bad username")
	ErrBadRoomCode      = errors.New("bad room code")
)

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	CreateRoom(ctx context.Context, room model.Room, host model.Player) error
	RoomByCode(ctx context.Context, code string) (model.Room, error)
	PlayersCount(ctx context.Context, code string) (int, error)
	UpsertPlayer(ctx context.Context, code string, player model.Player) error
	RemovePlayer(ctx context.Context, code string, name string) error
	DeleteByCode(ctx context.Context, code string) error
	Players(ctx context.Context, code string) ([]model.Player, error)
	IsHost(ctx context.Context, code string, name string) (bool, error)

	CleanupOrphanRooms(ctx context.Context, ttl time.Duration) error
}

//go:generate mockery --name=EventPublisher --output=./mocks/room/publisher --filename=publisher.go
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, roomCode string, payload map[string]any) error
}

type Usecase struct {
	RoomRepository RoomRepository
	Events         EventPublisher

	maxPlayers int
	roomTTL    time.Duration

	// Used to make periodic stuff on every Nth room creation.
	// The counter is shared across concurrent handlers.
	cleanupPeriod int64
	createsCount  atomic.Int64
}

func New(
	RoomRepository RoomRepository,
	maxPlayers int,
	roomTTL time.Duration,
	cleanup int,
) *Usecase {
	if cleanup <= 0 {
		cleanup = 20 /* default */
	}
	if maxPlayers <= 0 {
		maxPlayers = model.DefaultMaxPlayers
	}

	return &Usecase{
		RoomRepository: RoomRepository,
		maxPlayers:     maxPlayers,
		roomTTL:        roomTTL,
		cleanupPeriod:  int64(cleanup),
	}
}

func (u *Usecase) WithEvents(p EventPublisher) *Usecase {
	u.Events = p
	return u
}

func (u *Usecase) Create(ctx context.Context, hostName string) (string, error) {
	if err := validateUsername(hostName); err != nil {
		return "", err
	}

	// Cleanup orphan rooms
	if u.createsCount.Add(1)%u.cleanupPeriod == 0 && u.roomTTL > 0 {
		if err := u.RoomRepository.CleanupOrphanRooms(ctx, u.roomTTL); err != nil {
			return "", errors.Join(ErrInternal, err)
		}
	}

	return u.createRoomLobby(ctx, hostName)
}

// Assuming that codes can conflict.
// Retrying...
func (u *Usecase) createRoomLobby(ctx context.Context, hostName string) (string, error) {
	var retries = 3
	for retries > 0 {
		code := u.buildRoomCode()
		room := model.Room{
			Code:       code,
			HostName:   hostName,
			State:      model.StateWaiting,
			MaxPlayers: u.maxPlayers,
			CreatedAt:  time.Now(),
		}
		host := model.Player{Name: hostName}

		if err := u.RoomRepository.CreateRoom(ctx, room, host); err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
			} else {
				return "", errors.Join(ErrInternal, err)
			}
		} else {
			return code, nil
		}
	}
	return "", ErrRoomsUnavailable
}

func (u *Usecase) buildRoomCode() string {
	var builder strings.Builder
	builder.Grow(model.CodeLength)

	for range model.CodeLength {
		builder.WriteByte(model.CodeAlphabet[rand.Intn(len(model.CodeAlphabet))])
	}

	return builder.String()
}

func (u *Usecase) Join(ctx context.Context, code string, name string) error {
	if err := validateUsername(name); err != nil {
		return err
	}
	if err := validateRoomCode(code); err != nil {
		return err
	}

	room, err := u.RoomRepository.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	count, err := u.RoomRepository.PlayersCount(ctx, code)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if count >= room.MaxPlayers {
		return ErrRoomFull
	}

	// Rejoining under the same name overwrites the prior selection and votes.
	if err := u.RoomRepository.UpsertPlayer(ctx, code, model.Player{Name: name}); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	if u.Events != nil {
		// Event delivery failures must not fail the join.
		_ = u.Events.Publish(ctx, "user_joined", code, map[string]any{"user": name})
	}
	return nil
}

func (u *Usecase) Players(ctx context.Context, code string) ([]model.Player, error) {
	players, err := u.RoomRepository.Players(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return players, nil
}

func (u *Usecase) PlayersCount(ctx context.Context, code string) (int, error) {
	count, err := u.RoomRepository.PlayersCount(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return 0, ErrResourceNotFound
		}
		return 0, errors.Join(ErrInternal, err)
	}
	return count, nil
}

func (u *Usecase) IsHost(ctx context.Context, code string, name string) (bool, error) {
	isHost, err := u.RoomRepository.IsHost(ctx, code, name)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	return isHost, nil
}

func (u *Usecase) Leave(ctx context.Context, code string, name string) error {
	if err := u.RoomRepository.RemovePlayer(ctx, code, name); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Delete(ctx context.Context, code string) error {
	if err := u.RoomRepository.DeleteByCode(ctx, code); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func validateUsername(name string) error {
	if name == "" || len(name) > 8 || strings.ContainsAny(name, " \t") {
		return ErrBadUsername
	}
	return nil
}

func validateRoomCode(code string) error {
	if len(code) != model.CodeLength {
		return ErrBadRoomCode
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(model.CodeAlphabet, rune(code[i])) {
			return ErrBadRoomCode
		}
	}
	return nil
}
