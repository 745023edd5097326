package model

import "time"

type GameState string

const (
	StateWaiting        GameState = "waiting"
	StateSelectingSongs GameState = "selectingSongs"
	StateDisplaySongs   GameState = "displaySongs"
	StateVoteSongs      GameState = "voteSongs"
	StatePodiumSongs    GameState = "podiumSongs"
)

// Role of the acting client within a room. Only the host may drive most
// transitions; deadline expiry may be reported by any participant.
type Role string

const (
	RoleHost        Role = "host"
	RoleParticipant Role = "participant"
)

const (
	DefaultMaxPlayers = 6

	CodeLength   = 4
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Room struct {
	Code               string
	HostName           string
	State              GameState
	MaxPlayers         int
	SelectedPrompt     string
	CurrentPlayerIndex int
	PhaseDeadline      *time.Time
	CreatedAt          time.Time
}

// transitions maps each state to the single legal successor.
// There is no skip or rollback path besides podium -> waiting.
var transitions = map[GameState]GameState{
	StateWaiting:        StateSelectingSongs,
	StateSelectingSongs: StateDisplaySongs,
	StateDisplaySongs:   StateVoteSongs,
	StateVoteSongs:      StatePodiumSongs,
	StatePodiumSongs:    StateWaiting,
}

func (s GameState) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s GameState) CanTransitionTo(next GameState) bool {
	return transitions[s] == next
}

// HostOnly reports whether the transition out of s may be requested
// only by the room host. The vote window close is the exception: any
// participant observing the deadline may report it.
func (s GameState) HostOnly() bool {
	return s != StateVoteSongs
}
