package cards

import (
	"fmt"
	"math/rand"
	"strings"
)

/*
 * This package holds the immutable card domain for Farol: the 52-card
 * reference deck, rank labels and the bluff verdict. It has no knowledge
 * of games, sockets or storage.
 */

const (
	SuitClubs    = "clubs"
	SuitDiamonds = "diamonds"
	SuitHearts   = "hearts"
	SuitSpades   = "spades"
)

// Suits in reference order. Card IDs are derived from this ordering.
var Suits = []string{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

const DeckSize = 52

// Card is one of the 52 reference cards. ID is stable (1..52) and matches
// the seeded cards table, so clients and storage agree on identifiers.
type Card struct {
	ID   int    `json:"id"`
	Rank int    `json:"rank"` // 1=Ace .. 13=King
	Suit string `json:"suit"`
}

// NewDeck returns the 52 reference cards in a fixed order:
// clubs A..K, diamonds A..K, hearts A..K, spades A..K.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s, suit := range Suits {
		for rank := 1; rank <= 13; rank++ {
			deck = append(deck, Card{
				ID:   s*13 + rank,
				Rank: rank,
				Suit: suit,
			})
		}
	}
	return deck
}

// Shuffle permutes the deck in place with an unbiased Fisher-Yates shuffle.
func Shuffle(deck []Card) {
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// RankLabel returns the label players see for a numeric rank ("A", "2".."10",
// "J", "Q", "K").
func RankLabel(rank int) string {
	switch rank {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// ParseRankLabel maps a declared rank label back to its numeric rank.
// Labels are case-insensitive and may be padded with spaces.
func ParseRankLabel(label string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "A", "1", "ACE":
		return 1, nil
	case "2":
		return 2, nil
	case "3":
		return 3, nil
	case "4":
		return 4, nil
	case "5":
		return 5, nil
	case "6":
		return 6, nil
	case "7":
		return 7, nil
	case "8":
		return 8, nil
	case "9":
		return 9, nil
	case "10":
		return 10, nil
	case "J", "JACK":
		return 11, nil
	case "Q", "QUEEN":
		return 12, nil
	case "K", "KING":
		return 13, nil
	default:
		return 0, fmt.Errorf("unknown rank label %q", label)
	}
}

// IsBluff reports whether a play declared as declaredRank was a lie: true if
// any of the played cards has a different true rank.
func IsBluff(declaredRank int, played []Card) bool {
	for _, c := range played {
		if c.Rank != declaredRank {
			return true
		}
	}
	return false
}
