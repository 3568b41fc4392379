// Package model defines the data models for the chat game bot.
package model

import "time"

// Account represents a chat participant's bean balance.
// The identity is the stable opaque key the transport hands us for a
// sender (private contact or @-mentioned group member).
type Account struct {
	Identity    string     `db:"identity"`
	Balance     int64      `db:"balance"`
	LastClaimAt *time.Time `db:"last_claim_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Transaction represents a balance change record.
type Transaction struct {
	ID          int64     `db:"id"`
	Identity    string    `db:"identity"`
	Amount      int64     `db:"amount"`
	Type        string    `db:"type"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// Transaction types for categorizing balance changes.
const (
	TxTypeWeeklyClaim  = "weekly_claim"  // Weekly bean claim
	TxTypeBaccaratBet  = "baccarat_bet"  // Baccarat stake debit
	TxTypeBaccaratWin  = "baccarat_win"  // Baccarat winnings or stake refund
	TxTypeBlackjackBet = "blackjack_bet" // Blackjack stake debit
	TxTypeBlackjackWin = "blackjack_win" // Blackjack winnings or stake refund
)
