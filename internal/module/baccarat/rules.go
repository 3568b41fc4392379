package baccarat

import "chat-game-bot/internal/deck"

// Side is a baccarat bet option.
type Side string

// Bet options.
const (
	SidePlayer Side = "闲"
	SideBanker Side = "庄"
	SideTie    Side = "和"
)

// ParseSide parses a bet option token.
func ParseSide(token string) (Side, bool) {
	switch Side(token) {
	case SidePlayer, SideBanker, SideTie:
		return Side(token), true
	}
	return "", false
}

// CardValue returns a card's baccarat value: ace 1, numerals 2-9 at
// face value, tens and face cards 0.
func CardValue(c deck.Card) int {
	switch c.Rank {
	case "A":
		return 1
	case "10", "J", "Q", "K":
		return 0
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return int(c.Rank[0] - '0')
	}
	return 0
}

// HandValue returns a hand's total: the sum of card values modulo 10.
func HandValue(hand []deck.Card) int {
	total := 0
	for _, c := range hand {
		total += CardValue(c)
	}
	return total % 10
}

// BankerDraws reports whether the banker takes a third card, given the
// banker's two-card total and the player's third card value (playerDrew
// false when the player stood on two cards). Banker totals of 4-6 stand
// when the player stood.
func BankerDraws(bankerTotal, playerThird int, playerDrew bool) bool {
	switch {
	case bankerTotal <= 2:
		return true
	case bankerTotal == 3:
		return !playerDrew || playerThird != 8
	case bankerTotal == 4:
		return playerDrew && playerThird >= 2 && playerThird <= 7
	case bankerTotal == 5:
		return playerDrew && playerThird >= 4 && playerThird <= 7
	case bankerTotal == 6:
		return playerDrew && (playerThird == 6 || playerThird == 7)
	default:
		return false
	}
}

// Winner returns the winning side for the given final totals.
func Winner(playerTotal, bankerTotal int) Side {
	switch {
	case playerTotal > bankerTotal:
		return SidePlayer
	case playerTotal < bankerTotal:
		return SideBanker
	default:
		return SideTie
	}
}

// Payout returns the amount credited back for a resolved bet; the stake
// was already debited when the bet was placed. A winning tie bet pays
// 8:1 plus the stake; a winning player bet 1:1; a winning banker bet
// 0.95:1 (5% commission, truncated). A tie refunds a non-tie stake; a
// lost bet credits nothing.
func Payout(bet Side, amount int64, winner Side) int64 {
	if winner == SideTie {
		if bet == SideTie {
			return amount * 9
		}
		return amount
	}
	if bet != winner {
		return 0
	}
	if winner == SidePlayer {
		return amount * 2
	}
	return amount * 195 / 100
}
