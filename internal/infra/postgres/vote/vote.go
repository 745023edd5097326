package infra_postgres_vote

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/squabble-app/squabble/server/internal/model"
	usecase_vote "github.com/squabble-app/squabble/server/internal/usecase/vote"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	Code          string     `db:"code"`
	HostName      string     `db:"host_name"`
	GameState     string     `db:"game_state"`
	MaxPlayers    int        `db:"max_players"`
	PhaseDeadline *time.Time `db:"phase_deadline"`
}

type podiumDTO struct {
	Name        string `db:"name"`
	Votes       int    `db:"votes"`
	SongTitle   string `db:"song_title"`
	SongArtist  string `db:"song_artist"`
	SongURI     string `db:"song_uri"`
	SongID      string `db:"song_id"`
	SongImage   string `db:"song_image"`
	SongPreview string `db:"song_preview"`
}

func (d *Driver) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	var dto roomDTO

	query := `
        SELECT code, host_name, game_state, max_players, phase_deadline
        FROM rooms
        WHERE code = $1
    `

	err := d.db.GetContext(ctx, &dto, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_vote.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return model.Room{
		Code:          dto.Code,
		HostName:      dto.HostName,
		State:         model.GameState(dto.GameState),
		MaxPlayers:    dto.MaxPlayers,
		PhaseDeadline: dto.PhaseDeadline,
	}, nil
}

func (d *Driver) SetPlayerSong(ctx context.Context, code string, name string, song model.Song) error {
	query := `
        UPDATE players
        SET song_title = $1, song_artist = $2, song_uri = $3,
            song_id = $4, song_image = $5, song_preview = $6
        WHERE room_code = $7 AND name = $8
    `

	result, err := d.db.ExecContext(ctx, query,
		song.Title, song.Artist, song.URI, song.ID, song.Image, song.Preview,
		code, name,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_vote.ErrResourceNotFound
	}

	return nil
}

// CastVote is the atomic replacement for the read-modify-write increment:
// the voter's flag flip and the target's counter bump commit together or
// not at all, so concurrent votes can never lose an update.
func (d *Driver) CastVote(ctx context.Context, code string, voter string, target string) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryVoter := `
        UPDATE players
        SET voted = TRUE
        WHERE room_code = $1 AND name = $2 AND voted = FALSE
    `
	result, err := tx.ExecContext(ctx, queryVoter, code, voter)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		var exists bool
		queryExists := `SELECT EXISTS(SELECT 1 FROM players WHERE room_code = $1 AND name = $2)`
		if err := tx.GetContext(ctx, &exists, queryExists, code, voter); err != nil {
			return err
		}
		if !exists {
			return usecase_vote.ErrResourceNotFound
		}
		return usecase_vote.ErrAlreadyVoted
	}

	queryTarget := `
        UPDATE players
        SET votes = votes + 1
        WHERE room_code = $1 AND name = $2
          AND song_title <> '' AND song_artist <> ''
    `
	result, err = tx.ExecContext(ctx, queryTarget, code, target)
	if err != nil {
		return err
	}
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_vote.ErrNoSong
	}

	return tx.Commit()
}

func (d *Driver) Podium(ctx context.Context, code string, limit int) ([]model.PodiumEntry, error) {
	var exists bool
	queryExists := `SELECT EXISTS(SELECT 1 FROM rooms WHERE code = $1)`
	if err := d.db.GetContext(ctx, &exists, queryExists, code); err != nil {
		return nil, err
	}
	if !exists {
		return nil, usecase_vote.ErrResourceNotFound
	}

	var dtos []podiumDTO

	query := `
        SELECT name, votes, song_title, song_artist, song_uri,
               song_id, song_image, song_preview
        FROM players
        WHERE room_code = $1
          AND song_title <> '' AND song_artist <> ''
        ORDER BY votes DESC, name ASC
        LIMIT $2
    `

	if err := d.db.SelectContext(ctx, &dtos, query, code, limit); err != nil {
		return nil, err
	}

	entries := make([]model.PodiumEntry, 0, len(dtos))
	for _, dto := range dtos {
		entries = append(entries, model.PodiumEntry{
			PlayerName: dto.Name,
			Votes:      dto.Votes,
			Song: model.Song{
				Title:   dto.SongTitle,
				Artist:  dto.SongArtist,
				URI:     dto.SongURI,
				ID:      dto.SongID,
				Image:   dto.SongImage,
				Preview: dto.SongPreview,
			},
		})
	}

	return entries, nil
}
