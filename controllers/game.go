package controllers

import (
	game_constants "Farol/constants/game"
	"Farol/middleware"
	models "Farol/models/postgres"
	"Farol/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// resolveUsername maps the JWT email of the request to the public username.
func resolveUsername(c *gin.Context, db *gorm.DB) (string, bool) {
	email, err := middleware.JWT_decoder(c)
	if err != nil {
		return "", false
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found: invalid email"})
		return "", false
	}
	return user.ProfileUsername, true
}

// @Summary Creates a new game
// @Description Creates a waiting game hosted by the caller and seats the host at position 0
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{game_id=string,message=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/createGame [post]
// @Security ApiKeyAuth
func CreateGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := resolveUsername(c, db)
		if !ok {
			return
		}

		// *There is a function on the game model "BeforeCreate" for the id generation
		newGame := models.Game{
			HostUsername: username,
			State:        models.GameStateWaiting,
			MaxPlayers:   game_constants.MaxPlayers,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&newGame).Error; err != nil {
				return err
			}
			// The host takes the first seat immediately
			seat := models.GamePlayer{
				GameID:   newGame.ID,
				Username: username,
				Position: 0,
			}
			return tx.Create(&seat).Error
		})
		if err != nil {
			log.Printf("[GAME-ERROR] Failed to create game: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating game"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"game_id": newGame.ID, "message": "Game created successfully"})
	}
}

// @Summary Inserts a user into a game
// @Description Seats the caller at the next free position of a waiting game. Joining twice is a no-op.
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game to join"
// @Success 200 {object} object{message=string,position=integer}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/joinGame/{game_id} [post]
// @Security ApiKeyAuth
func JoinGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		username, ok := resolveUsername(c, db)
		if !ok {
			return
		}

		var position int
		alreadySeated := false

		err := db.Transaction(func(tx *gorm.DB) error {
			var g models.Game
			if err := tx.Where("id = ?", gameID).First(&g).Error; err != nil {
				return err
			}

			// Re-joining an existing seat just reports the seat back
			var seat models.GamePlayer
			result := tx.Where("game_id = ? AND username = ?", gameID, username).First(&seat)
			if result.Error == nil {
				alreadySeated = true
				position = seat.Position
				return nil
			}
			if result.Error != gorm.ErrRecordNotFound {
				return result.Error
			}

			if g.State != models.GameStateWaiting {
				return gorm.ErrInvalidData
			}

			var count int64
			if err := tx.Model(&models.GamePlayer{}).Where("game_id = ?", gameID).Count(&count).Error; err != nil {
				return err
			}
			if int(count) >= g.MaxPlayers {
				return gorm.ErrInvalidData
			}

			position = int(count)
			newSeat := models.GamePlayer{
				GameID:   gameID,
				Username: username,
				Position: position,
			}
			return tx.Create(&newSeat).Error
		})

		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			} else if err == gorm.ErrInvalidData {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Game already started or full"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error joining game"})
			}
			return
		}

		if alreadySeated {
			c.JSON(http.StatusOK, gin.H{"message": "Already seated in this game", "position": position})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Joined game successfully", "position": position})
	}
}

// @Summary Gives info of a game
// @Description Given a game id, it will return its public information
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game wanted"
// @Success 200 {object} object{game_id=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/gameInfo/{game_id} [get]
// @Security ApiKeyAuth
func GetGameInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		var g models.Game
		result := db.Preload("Players").Where("id = ?", gameID).First(&g)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			}
			return
		}

		players := make([]gin.H, len(g.Players))
		for i, p := range g.Players {
			players[i] = gin.H{
				"username": p.Username,
				"position": p.Position,
				"icon":     utils.UserIcon(db, p.Username),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"game_id":       g.ID,
			"host_username": g.HostUsername,
			"state":         g.State,
			"max_players":   g.MaxPlayers,
			"players":       players,
			"created_at":    g.CreatedAt,
		})
	}
}

// @Summary Lists all joinable games
// @Description Returns a list of all the games still waiting for players
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{game_id=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/getAllGames [get]
// @Security ApiKeyAuth
func GetAllGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var waiting []models.Game
		if err := db.Where("state = ?", models.GameStateWaiting).Find(&waiting).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing games"})
			return
		}

		games := make([]gin.H, len(waiting))
		for i, g := range waiting {
			games[i] = gin.H{
				"game_id":       g.ID,
				"host_username": g.HostUsername,
				"max_players":   g.MaxPlayers,
				"created_at":    g.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, games)
	}
}
