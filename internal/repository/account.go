// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chat-game-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepository handles bean account persistence. Accounts are
// keyed by the sender identity string the chat platform reports.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository instance.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Get retrieves an account by identity.
// Returns ErrAccountNotFound if the account does not exist.
func (r *AccountRepository) Get(ctx context.Context, identity string) (*model.Account, error) {
	const query = `
		SELECT identity, balance, last_claim_at, created_at, updated_at
		FROM accounts
		WHERE identity = $1
	`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, identity).Scan(
		&account.Identity,
		&account.Balance,
		&account.LastClaimAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// AddBalance adjusts an account's balance by amount, creating the
// account on first touch. The upsert is a single statement so two
// concurrent credits for the same identity cannot lose an update.
// Returns the updated account.
func (r *AccountRepository) AddBalance(ctx context.Context, identity string, amount int64) (*model.Account, error) {
	const query = `
		INSERT INTO accounts (identity, balance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (identity) DO UPDATE
		SET balance = accounts.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING identity, balance, last_claim_at, created_at, updated_at
	`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, identity, amount).Scan(
		&account.Identity,
		&account.Balance,
		&account.LastClaimAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add balance: %w", err)
	}

	return &account, nil
}

// Claim credits a claim reward and records the claim time in one
// statement, creating the account if it does not exist yet. Reward and
// timestamp land together, so a crash cannot hand out the reward
// without recording the claim.
func (r *AccountRepository) Claim(ctx context.Context, identity string, reward int64, claimTime time.Time) (*model.Account, error) {
	const query = `
		INSERT INTO accounts (identity, balance, last_claim_at, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (identity) DO UPDATE
		SET balance = accounts.balance + EXCLUDED.balance,
		    last_claim_at = EXCLUDED.last_claim_at,
		    updated_at = NOW()
		RETURNING identity, balance, last_claim_at, created_at, updated_at
	`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, identity, reward, claimTime).Scan(
		&account.Identity,
		&account.Balance,
		&account.LastClaimAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record claim: %w", err)
	}

	return &account, nil
}

// GetTopAccounts retrieves the top N accounts by balance. Ties break
// on identity so the leaderboard is stable between reads.
func (r *AccountRepository) GetTopAccounts(ctx context.Context, limit int) ([]model.Account, error) {
	const query = `
		SELECT identity, balance, last_claim_at, created_at, updated_at
		FROM accounts
		ORDER BY balance DESC, identity
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var account model.Account
		err := rows.Scan(
			&account.Identity,
			&account.Balance,
			&account.LastClaimAt,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// Exists checks if an account with the given identity exists.
func (r *AccountRepository) Exists(ctx context.Context, identity string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM accounts WHERE identity = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, identity).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}
