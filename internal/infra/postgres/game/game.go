package infra_postgres_game

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/squabble-app/squabble/server/internal/model"
	usecase_game "github.com/squabble-app/squabble/server/internal/usecase/game"
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
			return model.Room{}, usecase_game.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return model.Room{
		Code:               dto.Code,
		HostName:           dto.HostName,
		State:              model.GameState(dto.GameState),
		MaxPlayers:         dto.MaxPlayers,
		SelectedPrompt:     dto.SelectedPrompt,
		CurrentPlayerIndex: dto.CurrentPlayerIndex,
		PhaseDeadline:      dto.PhaseDeadline,
		CreatedAt:          dto.CreatedAt,
	}, nil
}

func (d *Driver) PlayersCount(ctx context.Context, code string) (int, error) {
	var count int
	query := `
        SELECT COUNT(name)
        FROM players
        WHERE room_code = $1
    `

	if err := d.db.GetContext(ctx, &count, query, code); err != nil {
		return 0, err
	}
	return count, nil
}

func (d *Driver) SetState(ctx context.Context, code string, state model.GameState, deadline *time.Time) error {
	query := `
        UPDATE rooms
        SET game_state = $1, phase_deadline = $2
        WHERE code = $3
    `

	result, err := d.db.ExecContext(ctx, query, string(state), deadline, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_game.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) SetPrompt(ctx context.Context, code string, prompt string) error {
	query := `
        UPDATE rooms
        SET selected_prompt = $1
        WHERE code = $2
    `

	result, err := d.db.ExecContext(ctx, query, prompt, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_game.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) SetCurrentPlayerIndex(ctx context.Context, code string, index int) error {
	query := `
        UPDATE rooms
        SET current_player_index = $1
        WHERE code = $2
    `

	result, err := d.db.ExecContext(ctx, query, index, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_game.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) ResetRound(ctx context.Context, code string) error {
	query := `
        UPDATE players
        SET votes = 0, voted = FALSE,
            song_title = '', song_artist = '', song_uri = '',
            song_id = '', song_image = '', song_preview = ''
        WHERE room_code = $1
    `

	_, err := d.db.ExecContext(ctx, query, code)
	return err
}
