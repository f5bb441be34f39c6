package handlers

import (
	socketio_types "Farol/services/socket_io/types"
	socketio_utils "Farol/services/socket_io/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to relay an in-game chat message to everyone in the room. The
// message is not persisted; table talk is part of the bluffing.
func HandleGameMessage(client *socket.Socket, db *gorm.DB, username string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing arguments: game id and message are required"})
			return
		}
		gameID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid game id"})
			return
		}
		message, ok := args[1].(string)
		if !ok || message == "" {
			client.Emit("error", gin.H{"error": "Invalid message"})
			return
		}

		if _, err := socketio_utils.ValidateGameAndPlayer(client, db, username, gameID); err != nil {
			return
		}

		log.Printf("[CHAT] %s in game %s: %s", username, gameID, message)
		sio.Sio_server.To(socket.Room(gameID)).Emit("new_game_message", gin.H{
			"game_id":  gameID,
			"username": username,
			"message":  message,
		})
	}
}
