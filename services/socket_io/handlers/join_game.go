package handlers

import (
	"Farol/services/game"
	"Farol/services/redis"
	socketio_types "Farol/services/socket_io/types"
	socketio_utils "Farol/services/socket_io/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle the act of joining a game room. The seat itself is
// created through the HTTP API; here we only verify the membership, join
// the socket.io room and push a fresh personalized snapshot. Re-joining is
// idempotent: it yields another snapshot, never another seat.
func HandleJoinGame(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinGame started - User: %s, Args: %v, Socket ID: %s",
			username, args, client.Id())

		if len(args) < 1 {
			log.Printf("[JOIN-ERROR] Missing game id for user %s", username)
			client.Emit("error", gin.H{"error": "Missing game id"})
			return
		}
		gameID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid game id"})
			return
		}

		if _, err := socketio_utils.ValidateGameAndPlayer(client, db, username, gameID); err != nil {
			return
		}

		client.Join(socket.Room(gameID))

		// Track presence so other components know where this player is
		if err := redisClient.MarkPlayerInGame(username, gameID, string(client.Id())); err != nil {
			log.Printf("[JOIN-ERROR] Error saving presence for %s: %v", username, err)
			// Presence is best-effort, the join still succeeds
		}

		log.Printf("[JOIN-SUCCESS] User %s joined game room %s", username, gameID)
		client.Emit("game_joined", gin.H{
			"game_id": gameID,
			"message": "Welcome to the game!",
		})

		sio.Sio_server.To(socket.Room(gameID)).Emit("player_joined", gin.H{
			"game_id":  gameID,
			"username": username,
		})

		// The join acknowledgement is immediately followed by a full snapshot
		SendGameStateTo(db, registry, client, gameID, username)
	}
}

// Exit a game room voluntarily. The seat stays (the player may come back
// and resync); only the socket room membership and presence change.
func HandleLeaveGame(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing game id"})
			return
		}
		gameID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid game id"})
			return
		}

		client.Leave(socket.Room(gameID))

		if err := redisClient.MarkPlayerInGame(username, "", string(client.Id())); err != nil {
			log.Printf("[LEAVE-ERROR] Error updating presence for %s: %v", username, err)
		}

		client.Emit("game_left", gin.H{"game_id": gameID})
		sio.Sio_server.To(socket.Room(gameID)).Emit("player_left", gin.H{
			"game_id":  gameID,
			"username": username,
			"reason":   "left",
		})
		log.Printf("[LEAVE] User %s left game room %s", username, gameID)

		// An ended game's session has nothing left to serve
		ReleaseSessionIfAbandoned(db, registry, sio, gameID)
	}
}

// HandleRequestGameState serves explicit full-state refresh requests, the
// server side of the client resync protocol.
func HandleRequestGameState(client *socket.Socket, db *gorm.DB, username string,
	registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing game id"})
			return
		}
		gameID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid game id"})
			return
		}

		if _, err := socketio_utils.ValidateGameAndPlayer(client, db, username, gameID); err != nil {
			return
		}

		log.Printf("[STATE-REQUEST] Snapshot requested for game %s by user %s", gameID, username)
		SendGameStateTo(db, registry, client, gameID, username)
	}
}
