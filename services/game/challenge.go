package game

import (
	models "Farol/models/postgres"
	"Farol/services/cards"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// ChallengeResult describes a resolved "call BS" challenge.
type ChallengeResult struct {
	Challenger   string
	Challenged   string
	DeclaredRank string
	WasBluff     bool
	Revealed     []cards.Card // The disputed cards, now public
	PileReceiver string
	ReceiverPos  int
	PileSize     int // Cards transferred into the receiver's hand
}

// Verdict maps a declared rank label against the true ranks of the played
// cards. It returns wasBluff = true when any card differs from the
// declaration. An unparseable label is a data-integrity failure, not a
// player mistake: plays record the label verbatim, so it must have been
// recognized once.
func Verdict(declaredRank string, played []cards.Card) (bool, error) {
	rank, err := cards.ParseRankLabel(declaredRank)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidDeclaredRank, err)
	}
	return cards.IsBluff(rank, played), nil
}

// ResolveChallenge resolves a BS call against the game's last play. The
// whole pile goes to the liar when the play was a bluff, to the challenger
// when it was truthful; either way the turn is set explicitly to the pile
// receiver and the pile and last play are cleared. The pile transfer is a
// single transaction; ephemeral state is cleared only after it commits.
func ResolveChallenge(db *gorm.DB, sess *Session, username string) (*ChallengeResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.lastPlay == nil {
		return nil, ErrNoPlayToChallenge
	}
	lp := sess.lastPlay

	result := &ChallengeResult{
		Challenger:   username,
		Challenged:   lp.Username,
		DeclaredRank: lp.DeclaredRank,
		Revealed:     lp.Cards,
		PileSize:     len(sess.pile),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var g models.Game
		if err := tx.Where("id = ?", sess.GameID).First(&g).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrGameNotFound
			}
			return fmt.Errorf("error loading game: %w", err)
		}
		if g.State != models.GameStatePlaying {
			return ErrInvalidGameState
		}

		var seat models.GamePlayer
		if err := tx.Where("game_id = ? AND username = ?", sess.GameID, username).First(&seat).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotAPlayer
			}
			return fmt.Errorf("error loading seat: %w", err)
		}
		if !seat.IsTurn {
			return ErrNotYourTurn
		}
		if lp.Username == username {
			return ErrCannotChallengeOwnPlay
		}

		wasBluff, err := Verdict(lp.DeclaredRank, lp.Cards)
		if err != nil {
			return err
		}
		result.WasBluff = wasBluff

		if wasBluff {
			result.PileReceiver = lp.Username
		} else {
			result.PileReceiver = username
		}

		rows := make([]models.HandCard, 0, len(sess.pile))
		for _, c := range sess.pile {
			rows = append(rows, models.HandCard{
				GameID:   sess.GameID,
				CardID:   c.ID,
				Username: result.PileReceiver,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("error transferring pile: %w", err)
			}
		}

		pos, err := setTurn(tx, sess.GameID, result.PileReceiver)
		if err != nil {
			return err
		}
		result.ReceiverPos = pos
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Durable transfer committed, clear the ephemeral side
	sess.pile = nil
	sess.lastPlay = nil

	log.Printf("[BS] %s challenged %s in game %s: bluff=%v, pile of %d goes to %s",
		result.Challenger, result.Challenged, sess.GameID,
		result.WasBluff, result.PileSize, result.PileReceiver)
	return result, nil
}
