package model

type Player struct {
	Name  string
	Votes int
	Voted bool
	Song  Song
}

// Song carries a song-search hit verbatim. Empty fields mean "unselected".
type Song struct {
	Title   string
	Artist  string
	URI     string
	ID      string
	Image   string
	Preview string
}

func (s Song) Empty() bool {
	return s.Title == "" || s.Artist == ""
}

// PodiumEntry is one row of the end-of-round leaderboard.
type PodiumEntry struct {
	PlayerName string
	Song       Song
	Votes      int
}
