//go:build integration

package integrationtest

import (
	"context"
	"sync"
	"testing"
	"time"

	infra_kafka "github.com/squabble-app/squabble/server/internal/infra/kafka"
	infra_postgres_game "github.com/squabble-app/squabble/server/internal/infra/postgres/game"
	infra_pg_init "github.com/squabble-app/squabble/server/internal/infra/postgres/init"
	infra_postgres_room "github.com/squabble-app/squabble/server/internal/infra/postgres/room"
	infra_postgres_vote "github.com/squabble-app/squabble/server/internal/infra/postgres/vote"
	"github.com/squabble-app/squabble/server/internal/model"
	usecase_game "github.com/squabble-app/squabble/server/internal/usecase/game"
	usecase_room "github.com/squabble-app/squabble/server/internal/usecase/room"
	usecase_vote "github.com/squabble-app/squabble/server/internal/usecase/vote"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RoundIntegrationSuite struct {
	suite.Suite

	roomUC *usecase_room.Usecase
	gameUC *usecase_game.Usecase
	voteUC *usecase_vote.Usecase
}

func (s *RoundIntegrationSuite) BeforeAll(t provider.T) {
	cfg := getConfig()

	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_init.MustInitSchema(pgConn)

	s.roomUC = usecase_room.New(infra_postgres_room.New(pgConn), cfg.Game.MaxPlayers, cfg.Game.RoomTTL, 20)
	// Zero vote window so any participant can close voting immediately.
	s.gameUC = usecase_game.New(infra_postgres_game.New(pgConn), infra_kafka.Noop{}, time.Nanosecond, time.Nanosecond)
	s.voteUC = usecase_vote.New(infra_postgres_vote.New(pgConn), infra_kafka.Noop{})
}

// Walks a whole round through the real storage layer: lobby, selection,
// reveal, voting, podium, back to lobby.
func (s *RoundIntegrationSuite) TestFullRound(t provider.T) {
	ctx := context.Background()

	code, err := s.roomUC.Create(ctx, "alice")
	require.NoError(t, err)
	defer s.roomUC.Delete(ctx, code)

	require.NoError(t, s.roomUC.Join(ctx, code, "bob"))
	require.NoError(t, s.roomUC.Join(ctx, code, "carol"))

	count, err := s.roomUC.PlayersCount(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	prompt, err := s.gameUC.Start(ctx, code, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)

	song := func(title string) model.Song {
		return model.Song{Title: title, Artist: "Test Artist", ID: "1"}
	}
	require.NoError(t, s.voteUC.SelectSong(ctx, code, "alice", song("Song A")))
	require.NoError(t, s.voteUC.SelectSong(ctx, code, "bob", song("Song B")))
	require.NoError(t, s.voteUC.SelectSong(ctx, code, "carol", song("Song C")))

	require.NoError(t, s.gameUC.Advance(ctx, code, "alice", model.StateDisplaySongs))
	require.NoError(t, s.gameUC.SetCurrentPlayerIndex(ctx, code, "alice", 1))
	require.NoError(t, s.gameUC.Advance(ctx, code, "alice", model.StateVoteSongs))

	require.NoError(t, s.voteUC.Vote(ctx, code, "alice", "bob"))
	require.NoError(t, s.voteUC.Vote(ctx, code, "carol", "bob"))
	require.NoError(t, s.voteUC.Vote(ctx, code, "bob", "carol"))

	assert.ErrorIs(t, s.voteUC.Vote(ctx, code, "alice", "carol"), usecase_vote.ErrAlreadyVoted)

	// Vote window already elapsed, so a regular participant closes it.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.gameUC.Advance(ctx, code, "bob", model.StatePodiumSongs))

	podium, err := s.voteUC.Podium(ctx, code)
	require.NoError(t, err)
	require.Len(t, podium, 3)
	assert.Equal(t, "bob", podium[0].PlayerName)
	assert.Equal(t, 2, podium[0].Votes)
	assert.Equal(t, "carol", podium[1].PlayerName)

	require.NoError(t, s.gameUC.Advance(ctx, code, "alice", model.StateWaiting))

	room, err := s.gameUC.Room(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, model.StateWaiting, room.State)
}

// Rejoining under a taken name resets that player's round state instead
// of erroring.
func (s *RoundIntegrationSuite) TestRejoinOverwrites(t provider.T) {
	ctx := context.Background()

	code, err := s.roomUC.Create(ctx, "alice")
	require.NoError(t, err)
	defer s.roomUC.Delete(ctx, code)

	require.NoError(t, s.roomUC.Join(ctx, code, "bob"))
	require.NoError(t, s.roomUC.Join(ctx, code, "bob"))

	count, err := s.roomUC.PlayersCount(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// Two voters hitting the same target at the same time must both land:
// the counter increment runs inside a transaction on the storage side.
func (s *RoundIntegrationSuite) TestConcurrentVotesBothCount(t provider.T) {
	ctx := context.Background()

	code, err := s.roomUC.Create(ctx, "alice")
	require.NoError(t, err)
	defer s.roomUC.Delete(ctx, code)

	require.NoError(t, s.roomUC.Join(ctx, code, "bob"))
	require.NoError(t, s.roomUC.Join(ctx, code, "carol"))

	_, err = s.gameUC.Start(ctx, code, "alice")
	require.NoError(t, err)

	song := model.Song{Title: "Song B", Artist: "Test Artist", ID: "1"}
	require.NoError(t, s.voteUC.SelectSong(ctx, code, "bob", song))

	require.NoError(t, s.gameUC.Advance(ctx, code, "alice", model.StateDisplaySongs))
	require.NoError(t, s.gameUC.Advance(ctx, code, "alice", model.StateVoteSongs))

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, voter := range []string{"alice", "carol"} {
		wg.Add(1)
		go func(voter string) {
			defer wg.Done()
			errs <- s.voteUC.Vote(ctx, code, voter, "bob")
		}(voter)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.gameUC.Advance(ctx, code, "bob", model.StatePodiumSongs))

	podium, err := s.voteUC.Podium(ctx, code)
	require.NoError(t, err)
	require.NotEmpty(t, podium)
	assert.Equal(t, "bob", podium[0].PlayerName)
	assert.Equal(t, 2, podium[0].Votes)
}

// The counterpart to TestConcurrentVotesBothCount: a counter updated by
// reading first and writing later loses one of two simultaneous votes,
// which is why CastVote increments inside the database statement instead.
func (s *RoundIntegrationSuite) TestReadThenWriteCounterLosesVote(t provider.T) {
	var (
		mu    sync.Mutex
		votes int
	)

	var snapshots sync.WaitGroup
	snapshots.Add(2)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			mu.Lock()
			seen := votes
			mu.Unlock()

			// Both voters observed the counter before either wrote it back.
			snapshots.Done()
			snapshots.Wait()

			mu.Lock()
			votes = seen + 1
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, votes)
}

func TestRoundIntegrationSuite(t *testing.T) {
	suite.RunSuite(t, new(RoundIntegrationSuite))
}
