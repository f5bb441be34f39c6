package socketio_utils

import (
	"Farol/middleware"
	models "Farol/models/postgres"
	"Farol/utils"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function that verifies a socket.io client connection using JWT
// authentication. It extracts the email from the JWT token and retrieves
// the associated username from the database.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, username, email string) {
	// Checks if we have auth data in the connection
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, "", ""
	}

	// Check if authorization token exists
	if _, exists := authData["authorization"].(string); !exists {
		log.Println("No authorization token provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing authorization token"})
		return false, "", ""
	}

	// Decode JWT to get the user's email
	email, err := middleware.Socketio_JWT_decoder(authData)
	if err != nil {
		log.Println("Error decoding JWT:", err)
		client.Emit("error", gin.H{
			"error": "Authentication failed: invalid JWT. Remember to set it on the 'authorization' field and with the 'Bearer ' prefix.",
		})
		return false, "", ""
	}

	// Fetch username from database using the email
	var user models.User
	result := db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		log.Println("Error fetching user from database:", result.Error)
		client.Emit("error", gin.H{"error": "Authentication failed: could not find user"})
		return false, "", email
	}

	username = user.ProfileUsername
	return true, username, email
}

// Helper function to validate that a game exists and the user is seated in
// it, emitting the error to the client when not.
func ValidateGameAndPlayer(client *socket.Socket, db *gorm.DB, username string,
	gameID string) (*models.Game, error) {

	g, err := utils.CheckGameExists(db, gameID)
	if err != nil {
		log.Printf("[CHECK-ERROR] Game does not exist: %s", gameID)
		client.Emit("error", gin.H{"error": "Game does not exist"})
		return nil, err
	}

	isSeated, err := utils.IsPlayerInGame(db, gameID, username)
	if err != nil {
		log.Printf("[CHECK-ERROR] Database error: %v", err)
		client.Emit("error", gin.H{"error": "Database error"})
		return nil, err
	}
	if !isSeated {
		log.Printf("[CHECK-ERROR] User is NOT in game: %s, Game: %s", username, gameID)
		client.Emit("error", gin.H{"error": "You must join the game first"})
		return nil, fmt.Errorf("user not in game")
	}
	return g, nil
}
