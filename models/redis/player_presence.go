package redis

type PlayerStatus string

const (
	StatusOnline  PlayerStatus = "online"
	StatusOffline PlayerStatus = "offline"
	StatusPlaying PlayerStatus = "playing"
)

// PlayerPresence tracks a connected player: which game they are watching
// and the socket they own. Stored in Redis with a TTL so stale entries
// disappear on their own.
type PlayerPresence struct {
	Username string       `json:"username"`
	Status   PlayerStatus `json:"status"`
	GameID   string       `json:"game_id"`   // Empty while not in a game room
	SocketID string       `json:"socket_id"` // For direct messaging
	LastPing int64        `json:"last_ping"` // Unix timestamp
}
