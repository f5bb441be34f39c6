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

// Function to handle a face-down play. Expected args: game id, a list of
// card ids from the caller's hand and the declared rank label. The true
// identity of the cards stays private: the room only learns who played, how
// many cards and what rank was declared.
func HandlePlayCards(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[PLAY] HandlePlayCards started - User: %s, Args: %v", username, args)

		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing arguments: game id, card ids and declared rank are required"})
			return
		}
		gameID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid game id"})
			return
		}

		// socket.io delivers JSON numbers as float64
		rawIDs, ok := args[1].([]interface{})
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid card list"})
			return
		}
		cardIDs := make([]int, 0, len(rawIDs))
		for _, raw := range rawIDs {
			id, ok := raw.(float64)
			if !ok {
				client.Emit("error", gin.H{"error": "Invalid card id in list"})
				return
			}
			cardIDs = append(cardIDs, int(id))
		}

		declaredRank, ok := args[2].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid declared rank"})
			return
		}

		// Sessions are only created for games that exist and seat the caller
		if _, err := socketio_utils.ValidateGameAndPlayer(client, db, username, gameID); err != nil {
			return
		}

		sess := registry.GetOrCreate(gameID)
		result, err := game.ExecutePlay(db, sess, username, cardIDs, declaredRank)
		if err != nil {
			emitEngineError(client, "PLAY", err)
			return
		}

		// Private confirmation with the caller's remaining hand size
		client.Emit("cards_played", gin.H{
			"game_id":       gameID,
			"declared_rank": result.DeclaredRank,
			"count":         result.Count,
			"hand_size":     result.HandSize,
			"pile_size":     result.PileSize,
		})

		// Public announcement: no card identities, only the declaration
		sio.Sio_server.To(socket.Room(gameID)).Emit("action_played", gin.H{
			"game_id":       gameID,
			"username":      result.Username,
			"position":      result.Position,
			"declared_rank": result.DeclaredRank,
			"count":         result.Count,
			"pile_size":     result.PileSize,
			"next_turn":     result.NextTurn,
		})

		if result.WonGame {
			log.Printf("[PLAY] Game %s won by %s", gameID, username)
			sio.Sio_server.To(socket.Room(gameID)).Emit("game_over", gin.H{
				"game_id": gameID,
				"winner":  username,
			})
			// The game is durably ended; drop the in-memory session
			registry.Remove(gameID)
		}

		BroadcastGameState(db, redisClient, registry, sio, gameID)
	}
}
