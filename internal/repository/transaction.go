package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"chat-game-bot/internal/model"
)

// TransactionRepository handles the bean movement audit trail.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction record.
func (r *TransactionRepository) Create(ctx context.Context, identity string, amount int64, txType string, description *string) (*model.Transaction, error) {
	const query = `
		INSERT INTO transactions (identity, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, identity, amount, type, description, created_at
	`

	var tx model.Transaction
	err := r.pool.QueryRow(ctx, query, identity, amount, txType, description).Scan(
		&tx.ID,
		&tx.Identity,
		&tx.Amount,
		&tx.Type,
		&tx.Description,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &tx, nil
}

// CreateWithTime creates a new transaction record with a specific
// timestamp. Useful for testing and data migration.
func (r *TransactionRepository) CreateWithTime(ctx context.Context, identity string, amount int64, txType string, description *string, createdAt time.Time) (*model.Transaction, error) {
	const query = `
		INSERT INTO transactions (identity, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, identity, amount, type, description, created_at
	`

	var tx model.Transaction
	err := r.pool.QueryRow(ctx, query, identity, amount, txType, description, createdAt).Scan(
		&tx.ID,
		&tx.Identity,
		&tx.Amount,
		&tx.Type,
		&tx.Description,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &tx, nil
}

// GetByIdentity retrieves transactions for an identity, newest first.
func (r *TransactionRepository) GetByIdentity(ctx context.Context, identity string, limit int) ([]*model.Transaction, error) {
	const query = `
		SELECT id, identity, amount, type, description, created_at
		FROM transactions
		WHERE identity = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, identity, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var tx model.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.Identity,
			&tx.Amount,
			&tx.Type,
			&tx.Description,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// GetByIdentityAndType retrieves transactions filtered by type.
func (r *TransactionRepository) GetByIdentityAndType(ctx context.Context, identity, txType string, limit int) ([]*model.Transaction, error) {
	const query = `
		SELECT id, identity, amount, type, description, created_at
		FROM transactions
		WHERE identity = $1 AND type = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, identity, txType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var tx model.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.Identity,
			&tx.Amount,
			&tx.Type,
			&tx.Description,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
