// Package deck implements the playing card mechanics shared by the
// card game modules: multi-deck shoes, shuffling and exhaustion-safe
// draws.
package deck

import (
	"math/rand"
	"strings"
)

var (
	suits = []string{"♠", "♥", "♣", "♦"}
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// Card is a single playing card.
type Card struct {
	Suit string
	Rank string
}

func (c Card) String() string {
	return c.Suit + c.Rank
}

// Deck is an ordered shoe of cards consumed from the top.
type Deck struct {
	cards []Card
	decks int
}

// New creates a shuffled shoe made of the given number of 52-card decks.
func New(decks int) *Deck {
	if decks < 1 {
		decks = 1
	}
	d := &Deck{decks: decks}
	d.replenish()
	return d
}

// Stacked creates a deck that yields exactly the given cards in order.
// Used by tests to force known deals; once exhausted it replenishes
// like a single-deck shoe.
func Stacked(cards ...Card) *Deck {
	d := &Deck{decks: 1, cards: make([]Card, len(cards))}
	// Draw pops from the end, so store in reverse.
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// replenish fills the shoe with fresh decks and shuffles.
func (d *Deck) replenish() {
	d.cards = d.cards[:0]
	for i := 0; i < d.decks; i++ {
		for _, suit := range suits {
			for _, rank := range ranks {
				d.cards = append(d.cards, Card{Suit: suit, Rank: rank})
			}
		}
	}
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. An exhausted shoe is replaced
// with a fresh shuffled one before the draw completes, so a draw never
// fails or blocks; mid-hand this can reintroduce already-dealt cards.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.replenish()
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c
}

// Remaining returns the number of cards left in the shoe.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Size returns the number of cards in a full shoe.
func (d *Deck) Size() int {
	return d.decks * len(suits) * len(ranks)
}

// FormatHand renders a hand the way replies show it: cards joined by 、.
func FormatHand(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, "、")
}
