package infra_postgres_room

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/squabble-app/squabble/server/internal/model"
	usecase_room "github.com/squabble-app/squabble/server/internal/usecase/room"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	Code               string     `db:"code"`
	HostName           string     `db:"host_name"`
	GameState          string     `db:"game_state"`
	MaxPlayers         int        `db:"max_players"`
	SelectedPrompt     string     `db:"selected_prompt"`
	CurrentPlayerIndex int        `db:"current_player_index"`
	PhaseDeadline      *time.Time `db:"phase_deadline"`
	CreatedAt          time.Time  `db:"created_at"`
}

type playerDTO struct {
	Name        string `db:"name"`
	Votes       int    `db:"votes"`
	Voted       bool   `db:"voted"`
	SongTitle   string `db:"song_title"`
	SongArtist  string `db:"song_artist"`
	SongURI     string `db:"song_uri"`
	SongID      string `db:"song_id"`
	SongImage   string `db:"song_image"`
	SongPreview string `db:"song_preview"`
}

func (p playerDTO) toModel() model.Player {
	return model.Player{
		Name:  p.Name,
		Votes: p.Votes,
		Voted: p.Voted,
		Song: model.Song{
			Title:   p.SongTitle,
			Artist:  p.SongArtist,
			URI:     p.SongURI,
			ID:      p.SongID,
			Image:   p.SongImage,
			Preview: p.SongPreview,
		},
	}
}

func toRoom(dto roomDTO) model.Room {
	return model.Room{
		Code:               dto.Code,
		HostName:           dto.HostName,
		State:              model.GameState(dto.GameState),
		MaxPlayers:         dto.MaxPlayers,
		SelectedPrompt:     dto.SelectedPrompt,
		CurrentPlayerIndex: dto.CurrentPlayerIndex,
		PhaseDeadline:      dto.PhaseDeadline,
		CreatedAt:          dto.CreatedAt,
	}
}

func (d *Driver) CreateRoom(ctx context.Context, room model.Room, host model.Player) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryRoom := `
		INSERT INTO rooms (code, host_name, game_state, max_players, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, queryRoom,
		room.Code, room.HostName, string(room.State), room.MaxPlayers, room.CreatedAt,
	); err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return usecase_room.ErrCodeConflict
		}
		return err
	}

	queryHost := `
		INSERT INTO players (room_code, name)
		VALUES ($1, $2)
	`
	if _, err := tx.ExecContext(ctx, queryHost, room.Code, host.Name); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	var dto roomDTO

	query := `
        SELECT code, host_name, game_state, max_players, selected_prompt,
               current_player_index, phase_deadline, created_at
        FROM rooms
        WHERE code = $1
    `

	err := d.db.GetContext(ctx, &dto, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return toRoom(dto), nil
}

func (d *Driver) PlayersCount(ctx context.Context, code string) (int, error) {
	var count int
	query := `
        SELECT COUNT(p.name)
        FROM players p
        JOIN rooms r ON p.room_code = r.code
        WHERE r.code = $1
    `

	err := d.db.GetContext(ctx, &count, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, usecase_room.ErrResourceNotFound
		}
		return 0, err
	}

	return count, nil
}

func (d *Driver) UpsertPlayer(ctx context.Context, code string, player model.Player) error {
	var exists bool
	queryRoom := `SELECT EXISTS(SELECT 1 FROM rooms WHERE code = $1)`
	if err := d.db.GetContext(ctx, &exists, queryRoom, code); err != nil {
		return err
	}
	if !exists {
		return usecase_room.ErrResourceNotFound
	}

	query := `
        INSERT INTO players (room_code, name)
        VALUES ($1, $2)
        ON CONFLICT (room_code, name)
        DO UPDATE SET votes = 0, voted = FALSE,
                      song_title = '', song_artist = '', song_uri = '',
                      song_id = '', song_image = '', song_preview = ''
    `

	_, err := d.db.ExecContext(ctx, query, code, player.Name)
	return err
}

func (d *Driver) RemovePlayer(ctx context.Context, code string, name string) error {
	query := `
        DELETE FROM players
        WHERE room_code = $1 AND name = $2
    `

	result, err := d.db.ExecContext(ctx, query, code, name)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) DeleteByCode(ctx context.Context, code string) error {
	query := `
        DELETE FROM rooms
        WHERE code = $1
    `

	result, err := d.db.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) Players(ctx context.Context, code string) ([]model.Player, error) {
	var exists bool
	queryRoom := `SELECT EXISTS(SELECT 1 FROM rooms WHERE code = $1)`
	if err := d.db.GetContext(ctx, &exists, queryRoom, code); err != nil {
		return nil, err
	}
	if !exists {
		return nil, usecase_room.ErrResourceNotFound
	}

	var dtos []playerDTO
	query := `
        SELECT name, votes, voted, song_title, song_artist, song_uri,
               song_id, song_image, song_preview
        FROM players
        WHERE room_code = $1
        ORDER BY joined_at
    `

	if err := d.db.SelectContext(ctx, &dtos, query, code); err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(dtos))
	for _, dto := range dtos {
		players = append(players, dto.toModel())
	}
	return players, nil
}

func (d *Driver) IsHost(ctx context.Context, code string, name string) (bool, error) {
	var hostName string

	query := `
        SELECT host_name
        FROM rooms
        WHERE code = $1
    `

	err := d.db.GetContext(ctx, &hostName, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, usecase_room.ErrResourceNotFound
		}
		return false, err
	}

	return hostName == name, nil
}

func (d *Driver) CleanupOrphanRooms(ctx context.Context, ttl time.Duration) error {
	query := `
        DELETE FROM rooms
        WHERE created_at < $1
    `

	_, err := d.db.ExecContext(ctx, query, time.Now().Add(-ttl))
	return err
}
