package blackjack

import (
	"strconv"

	"chat-game-bot/internal/deck"
)

// CardValue returns a card's blackjack value before any ace adjustment:
// aces count 11, face cards 10, numerals their face value.
func CardValue(c deck.Card) int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	}
	n, _ := strconv.Atoi(c.Rank)
	return n
}

// HandTotal returns a hand's best total. Aces start at 11 and are
// demoted to 1 one at a time while the hand is bust.
func HandTotal(hand []deck.Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		if c.Rank == "A" {
			aces++
		}
		total += CardValue(c)
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}
