package handlers

import (
	"Farol/services/game"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Maps engine errors to the messages clients see. Anything not on the list
// is an internal failure and is reported generically.
var engineErrorMessages = map[error]string{
	game.ErrGameNotFound:           "Game does not exist",
	game.ErrInvalidGameState:       "The game is not in a valid state for that action",
	game.ErrInsufficientPlayers:    "At least 2 players are needed to start",
	game.ErrNotAPlayer:             "You are not seated in this game",
	game.ErrNotYourTurn:            "It's not your turn",
	game.ErrNoCardsSelected:        "You must select at least one card",
	game.ErrMissingDeclaredRank:    "You must declare a rank for your play",
	game.ErrCardNotInHand:          "One or more of those cards are not in your hand",
	game.ErrNoPlayToChallenge:      "There is no play to challenge",
	game.ErrCannotChallengeOwnPlay: "You cannot challenge your own play",
}

// emitEngineError sends the player-facing message for an engine error, or a
// generic one when the error is internal (DB failures, corrupted plays).
func emitEngineError(client *socket.Socket, tag string, err error) {
	for sentinel, msg := range engineErrorMessages {
		if errors.Is(err, sentinel) {
			log.Printf("[%s-ERROR] %v", tag, err)
			client.Emit("error", gin.H{"error": msg})
			return
		}
	}
	log.Printf("[%s-ERROR] Internal error: %v", tag, err)
	client.Emit("error", gin.H{"error": "Internal server error"})
}
