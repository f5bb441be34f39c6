package handlers

import (
	"Farol/services/cards"
	"Farol/services/game"
	"Farol/services/redis"
	socketio_types "Farol/services/socket_io/types"
	socketio_utils "Farol/services/socket_io/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle a BS call against the last play. The disputed cards
// are revealed to the whole room, the pile moves into the liar's hand (or
// the challenger's, when the play was truthful) and the turn passes to the
// pile receiver.
func HandleCallBS(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[BS] HandleCallBS started - User: %s, Args: %v", username, args)

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
		result, err := game.ResolveChallenge(db, sess, username)
		if err != nil {
			emitEngineError(client, "BS", err)
			return
		}

		revealed := make([]gin.H, 0, len(result.Revealed))
		for _, c := range result.Revealed {
			revealed = append(revealed, gin.H{
				"id":   c.ID,
				"rank": cards.RankLabel(c.Rank),
				"suit": c.Suit,
			})
		}

		sio.Sio_server.To(socket.Room(gameID)).Emit("bs_result", gin.H{
			"game_id":       gameID,
			"challenger":    result.Challenger,
			"challenged":    result.Challenged,
			"declared_rank": result.DeclaredRank,
			"was_bluff":     result.WasBluff,
			"revealed":      revealed,
			"pile_receiver": result.PileReceiver,
			"pile_size":     result.PileSize,
			"next_turn":     result.ReceiverPos,
		})

		BroadcastGameState(db, redisClient, registry, sio, gameID)
	}
}
