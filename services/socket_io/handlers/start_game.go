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

// Function to start a game: shuffle the deck, deal every card round-robin
// over the seats and put the turn on position 0. Any seated player may
// start; the engine rejects games that are not waiting or have fewer than
// two seats.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[START] HandleStartGame started - User: %s, Args: %v", username, args)

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing game id"})
			return
		}
		gameID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid game id"})
			return
		}

		// Sessions are only created for games that exist and seat the caller
		if _, err := socketio_utils.ValidateGameAndPlayer(client, db, username, gameID); err != nil {
			return
		}

		sess := registry.GetOrCreate(gameID)
		result, err := game.DealCards(db, sess, username)
		if err != nil {
			emitEngineError(client, "START", err)
			return
		}

		log.Printf("[START-SUCCESS] Game %s started by %s with %d players",
			gameID, username, len(result.HandSizes))

		sio.Sio_server.To(socket.Room(gameID)).Emit("game_started", gin.H{
			"game_id":      gameID,
			"started_by":   username,
			"cards_dealt":  result.CardsDealt,
			"current_turn": result.CurrentTurn,
		})

		// Every player gets a personalized snapshot with their fresh hand
		BroadcastGameState(db, redisClient, registry, sio, gameID)
	}
}
