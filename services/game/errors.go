package game

import "errors"

// Engine error taxonomy. Authorization, validation and state-conflict
// errors are surfaced verbatim to the caller; data-integrity errors
// (ErrCardNotInHand at deletion time, ErrInvalidDeclaredRank during
// resolution) roll the whole operation back and reach the player only as a
// generic server error.
var (
	ErrGameNotFound           = errors.New("game not found")
	ErrInvalidGameState       = errors.New("game is not in the expected state")
	ErrInsufficientPlayers    = errors.New("at least 2 seated players are needed")
	ErrNotAPlayer             = errors.New("you are not a player of this game")
	ErrNotYourTurn            = errors.New("it is not your turn")
	ErrNoCardsSelected        = errors.New("no cards selected")
	ErrMissingDeclaredRank    = errors.New("missing declared rank")
	ErrCardNotInHand          = errors.New("card not found in your hand")
	ErrNoPlayToChallenge      = errors.New("there is no play to challenge")
	ErrCannotChallengeOwnPlay = errors.New("you cannot challenge your own play")
	ErrInvalidDeclaredRank    = errors.New("last play carries an unrecognized declared rank")
)
