package model

// Session mirrors what the mobile client keeps across restarts:
// who the user is, which room they're in, and whether they host it.
type Session struct {
	UserName string `json:"user_name"`
	RoomCode string `json:"room_code"`
	IsHost   bool   `json:"is_host"`
}
