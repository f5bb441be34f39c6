package handlers

import (
	"Farol/config"
	models "Farol/models/postgres"
	"Farol/services/game"
	socketio_types "Farol/services/socket_io/types"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Session release against a real database. Skipped unless POSTGRES_HOST is
// configured (directly or via a .env at the repo root).
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	godotenv.Load("../../../.env")
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not configured, skipping database test")
	}

	db, err := config.ConnectGORM()
	require.NoError(t, err)
	require.NoError(t, config.MigrateDatabase(db))
	return db
}

func seedGameWithSeats(t *testing.T, db *gorm.DB, state string, n int) (string, []string) {
	t.Helper()
	suffix := time.Now().UnixNano()

	usernames := make([]string, n)
	for i := range usernames {
		usernames[i] = fmt.Sprintf("cleanuptest%d_%d", i, suffix)
		profile := models.GameProfile{Username: usernames[i], UserStats: []byte(`{}`)}
		require.NoError(t, db.Create(&profile).Error)
	}

	g := models.Game{HostUsername: usernames[0], State: state, MaxPlayers: 8}
	require.NoError(t, db.Create(&g).Error)

	for i, username := range usernames {
		seat := models.GamePlayer{GameID: g.ID, Username: username, Position: i}
		require.NoError(t, db.Create(&seat).Error)
	}
	return g.ID, usernames
}

func TestReleaseSessionOfMissingGame(t *testing.T) {
	db := testDB(t)
	registry := game.NewRegistry()
	sio := socketio_types.NewSocketServer()

	// A session that slipped in for a game id with no row behind it
	registry.GetOrCreate("zzz_no_such_game")
	require.Equal(t, 1, registry.Count())

	ReleaseSessionIfAbandoned(db, registry, sio, "zzz_no_such_game")
	assert.Equal(t, 0, registry.Count())
}

func TestReleaseSessionOfEndedGame(t *testing.T) {
	db := testDB(t)
	registry := game.NewRegistry()
	sio := socketio_types.NewSocketServer()

	gameID, players := seedGameWithSeats(t, db, models.GameStateEnded, 2)
	registry.GetOrCreate(gameID)

	// Ended games are released even while players are still connected
	sio.AddConnection(players[0], nil)
	ReleaseSessionIfAbandoned(db, registry, sio, gameID)
	assert.Equal(t, 0, registry.Count())
}

func TestReleaseSessionOfAbandonedGame(t *testing.T) {
	db := testDB(t)
	registry := game.NewRegistry()
	sio := socketio_types.NewSocketServer()

	gameID, players := seedGameWithSeats(t, db, models.GameStatePlaying, 2)
	registry.GetOrCreate(gameID)

	// While anyone is still connected the session stays
	sio.AddConnection(players[1], nil)
	ReleaseSessionIfAbandoned(db, registry, sio, gameID)
	assert.Equal(t, 1, registry.Count())

	// Last connection gone: the game is abandoned and the session released
	sio.RemoveConnection(players[1])
	ReleaseSessionIfAbandoned(db, registry, sio, gameID)
	assert.Equal(t, 0, registry.Count())
}

func TestReleaseSessionKeepsActiveWaitingGame(t *testing.T) {
	db := testDB(t)
	registry := game.NewRegistry()
	sio := socketio_types.NewSocketServer()

	gameID, players := seedGameWithSeats(t, db, models.GameStateWaiting, 3)
	registry.GetOrCreate(gameID)
	sio.AddConnection(players[2], nil)

	ReleaseSessionIfAbandoned(db, registry, sio, gameID)
	assert.Equal(t, 1, registry.Count())

	// Releasing a game with no session is a no-op
	registry.Remove(gameID)
	ReleaseSessionIfAbandoned(db, registry, sio, gameID)
	assert.Equal(t, 0, registry.Count())
}
