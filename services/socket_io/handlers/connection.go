package handlers

import (
	models "Farol/models/postgres"
	"Farol/services/game"
	"Farol/services/redis"
	socketio_types "Farol/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle a client disconnecting. The seat and hand stay in the
// database so the player can reconnect and resync; only the live connection
// and the presence record go away. Rooms the player was seated in are told
// so clients can grey out the avatar.
func HandleDisconnecting(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] User %s disconnecting, socket %s", username, client.Id())

		var seats []models.GamePlayer
		if err := db.Where("username = ?", username).Find(&seats).Error; err != nil {
			log.Printf("[DISCONNECT-ERROR] Error loading seats of %s: %v", username, err)
			seats = nil
		}
		for _, seat := range seats {
			sio.Sio_server.To(socket.Room(seat.GameID)).Emit("player_disconnected", gin.H{
				"game_id":  seat.GameID,
				"username": username,
			})
		}

		if err := redisClient.DeletePlayerPresence(username); err != nil {
			log.Printf("[DISCONNECT-ERROR] Error deleting presence of %s: %v", username, err)
		}

		sio.RemoveConnection(username)

		// With this connection gone, some of the player's games may have
		// nobody left on them
		for _, seat := range seats {
			ReleaseSessionIfAbandoned(db, registry, sio, seat.GameID)
		}

		log.Printf("[DISCONNECT] User %s cleaned up", username)
	}
}
