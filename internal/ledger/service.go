// Package ledger provides the bean accounting service the game and
// economy modules run against.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"chat-game-bot/internal/model"
	"chat-game-bot/internal/repository"
)

// Service moves beans between nowhere and accounts and answers balance
// queries. Every movement is recorded in the transaction audit trail.
type Service struct {
	accounts *repository.AccountRepository
	txs      *repository.TransactionRepository
	reward   int64
	cooldown time.Duration
}

// NewService creates the ledger service with the weekly claim reward
// and cooldown measured in days.
func NewService(
	accounts *repository.AccountRepository,
	txs *repository.TransactionRepository,
	reward int64,
	cooldownDays int,
) *Service {
	return &Service{
		accounts: accounts,
		txs:      txs,
		reward:   reward,
		cooldown: time.Duration(cooldownDays) * 24 * time.Hour,
	}
}

// Balance returns the identity's current bean count. An identity that
// has never been seen holds zero beans.
func (s *Service) Balance(ctx context.Context, identity string) (int64, error) {
	account, err := s.accounts.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return account.Balance, nil
}

// Credit adjusts the identity's balance by amount (negative to debit)
// and records the movement. The account is created on first touch.
func (s *Service) Credit(ctx context.Context, identity string, amount int64, txType, description string) error {
	if _, err := s.accounts.AddBalance(ctx, identity, amount); err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}

	var desc *string
	if description != "" {
		desc = &description
	}
	if _, err := s.txs.Create(ctx, identity, amount, txType, desc); err != nil {
		// The balance change already landed; losing one audit row is
		// not worth failing the game round over.
		log.Warn().Err(err).
			Str("identity", identity).
			Int64("amount", amount).
			Str("type", txType).
			Msg("failed to record transaction")
	}
	return nil
}

// ClaimWeekly attempts the weekly bean claim. It returns whether the
// claim succeeded and the identity's balance afterwards.
func (s *Service) ClaimWeekly(ctx context.Context, identity string) (bool, int64, error) {
	account, err := s.accounts.Get(ctx, identity)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return false, 0, fmt.Errorf("failed to check claim eligibility: %w", err)
	}

	var lastClaim *time.Time
	if account != nil {
		lastClaim = account.LastClaimAt
	}
	eligible, _ := claimEligibility(lastClaim, s.cooldown, time.Now())
	if !eligible {
		return false, account.Balance, nil
	}

	// Reward and claim timestamp are written as one statement; a crash
	// must not grant the beans while leaving the claim unrecorded.
	updated, err := s.accounts.Claim(ctx, identity, s.reward, time.Now())
	if err != nil {
		return false, 0, fmt.Errorf("failed to record weekly claim: %w", err)
	}

	desc := "每周领取豆子"
	if _, err := s.txs.Create(ctx, identity, s.reward, model.TxTypeWeeklyClaim, &desc); err != nil {
		log.Warn().Err(err).Str("identity", identity).Msg("failed to record claim transaction")
	}

	return true, updated.Balance, nil
}

// NextClaimTime returns when the identity may claim again. An identity
// that never claimed may claim immediately.
func (s *Service) NextClaimTime(ctx context.Context, identity string) (time.Time, error) {
	account, err := s.accounts.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return time.Now(), nil
		}
		return time.Time{}, fmt.Errorf("failed to get next claim time: %w", err)
	}
	if account.LastClaimAt == nil {
		return time.Now(), nil
	}
	return account.LastClaimAt.Add(s.cooldown), nil
}

// TopN returns the n richest accounts, richest first.
func (s *Service) TopN(ctx context.Context, n int) ([]model.Account, error) {
	accounts, err := s.accounts.GetTopAccounts(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get top accounts: %w", err)
	}
	return accounts, nil
}

// claimEligibility decides whether a claim at now is allowed given the
// last claim time (nil means never claimed) and returns the remaining
// wait when it is not.
func claimEligibility(lastClaim *time.Time, cooldown time.Duration, now time.Time) (bool, time.Duration) {
	if lastClaim == nil {
		return true, 0
	}
	next := lastClaim.Add(cooldown)
	if !now.Before(next) {
		return true, 0
	}
	return false, next.Sub(now)
}
