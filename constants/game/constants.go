package game_constants

const MinPlayers = 2
const MaxPlayers = 8 // NOTE: This is what frontend uses
const DeckSize = 52

// Resync tuning used by the client SDK
const (
	ResyncMaxAttempts      = 5
	ResyncInitialBackoffMs = 500
	ResyncRefreshSeconds   = 30
	// Minimum gap between explicit snapshot requests from one client
	ResyncMinSnapshotGapMs = 1000
)
