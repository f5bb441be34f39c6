package handlers

import (
	"Farol/services/game"
	"Farol/services/redis"
	socketio_types "Farol/services/socket_io/types"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

/*
 * State broadcasting. Every mutating operation (join, deal, play,
 * challenge) ends with a full rebroadcast: one shared view assembled once,
 * then personalized per seat with that player's own hand and emitted on the
 * player's private connection. Hands are never emitted to the shared room.
 */

// BroadcastGameState rebuilds the game snapshot and pushes a personalized
// copy to every seated player that is currently connected.
func BroadcastGameState(db *gorm.DB, redisClient *redis.RedisClient,
	registry *game.Registry, sio *socketio_types.SocketServer, gameID string) {

	g, players, handSizes, err := game.LoadGameState(db, gameID)
	if err != nil {
		log.Printf("[STATE-ERROR] Error loading game %s: %v", gameID, err)
		return
	}

	pileSize := 0
	var lastPlay *game.LastPlay
	if sess, exists := registry.Get(gameID); exists {
		pileSize, lastPlay = sess.Snapshot()
	}

	shared := game.BuildGameView(g, players, handSizes, pileSize, lastPlay)

	for _, p := range players {
		conn, connected := sio.GetConnection(p.Username)
		if !connected {
			// Missed snapshots are recovered by the client resync protocol
			if presence, err := redisClient.GetPlayerPresence(p.Username); err == nil && presence == nil {
				log.Printf("[STATE] Skipping offline player %s for game %s", p.Username, gameID)
			}
			continue
		}

		hand, err := game.LoadHand(db, gameID, p.Username)
		if err != nil {
			log.Printf("[STATE-ERROR] Error loading hand of %s: %v", p.Username, err)
			continue
		}
		conn.Emit("game_state", game.BuildPlayerView(shared, hand))
	}

	log.Printf("[STATE] Broadcasted state of game %s to %d seat(s)", gameID, len(players))
}

// SendGameStateTo pushes a personalized snapshot to a single player, used
// right after a join and for explicit state requests.
func SendGameStateTo(db *gorm.DB, registry *game.Registry, client *socket.Socket,
	gameID string, username string) {

	g, players, handSizes, err := game.LoadGameState(db, gameID)
	if err != nil {
		log.Printf("[STATE-ERROR] Error loading game %s: %v", gameID, err)
		return
	}

	pileSize := 0
	var lastPlay *game.LastPlay
	if sess, exists := registry.Get(gameID); exists {
		pileSize, lastPlay = sess.Snapshot()
	}

	hand, err := game.LoadHand(db, gameID, username)
	if err != nil {
		log.Printf("[STATE-ERROR] Error loading hand of %s: %v", username, err)
		return
	}

	shared := game.BuildGameView(g, players, handSizes, pileSize, lastPlay)
	client.Emit("game_state", game.BuildPlayerView(shared, hand))
	log.Printf("[STATE] Sent snapshot of game %s to %s", gameID, username)
}
