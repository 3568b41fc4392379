// Package main is the entry point for the chat game bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chat-game-bot/internal/config"
	"chat-game-bot/internal/dispatcher"
	"chat-game-bot/internal/ledger"
	"chat-game-bot/internal/module/baccarat"
	"chat-game-bot/internal/module/beans"
	"chat-game-bot/internal/module/blackjack"
	"chat-game-bot/internal/module/chat"
	"chat-game-bot/internal/module/help"
	"chat-game-bot/internal/module/random"
	"chat-game-bot/internal/pkg/db"
	"chat-game-bot/internal/repository"
	"chat-game-bot/internal/router"
	"chat-game-bot/internal/transport"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories and the ledger service
	accountRepo := repository.NewAccountRepository(dbPool.Pool)
	txRepo := repository.NewTransactionRepository(dbPool.Pool)
	ledgerService := ledger.NewService(
		accountRepo,
		txRepo,
		cfg.Weekly.Reward,
		cfg.Weekly.CooldownDays,
	)

	// Build the command modules
	descriptionPath := filepath.Join(cfg.Data.Dir, "description.json")
	chatModule := chat.New(cfg.Chat)
	r, err := router.New(chatModule,
		baccarat.New(ledgerService, cfg.Games.Baccarat.Decks),
		blackjack.New(ledgerService, cfg.Games.Blackjack.Decks),
		beans.NewClaim(ledgerService, cfg.Weekly.Reward),
		beans.NewCheck(ledgerService),
		beans.NewChart(ledgerService),
		random.New(),
		help.New(descriptionPath),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build command router")
	}

	if err := r.WriteDescriptions(descriptionPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to write capability listing")
	}

	log.Info().
		Strs("commands", r.Commands()).
		Msg("Modules registered")

	// The transport implements the dispatcher's Replier, so wire the
	// two together through a late-bound indirection.
	var tg *transport.Telegram
	replier := replierFunc(func(msg dispatcher.Message, text string) error {
		return tg.Reply(msg, text)
	})

	d := dispatcher.New(r, replier, cfg.Dispatcher.Workers, cfg.Dispatcher.QueueSize)

	tg, err = transport.NewTelegram(cfg, d)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create telegram transport")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		tg.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Stop taking messages, then drain the in-flight ones.
	tg.Stop()
	d.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// replierFunc adapts a function to the dispatcher.Replier interface.
type replierFunc func(msg dispatcher.Message, text string) error

func (f replierFunc) Reply(msg dispatcher.Message, text string) error {
	return f(msg, text)
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create accounts table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			identity TEXT PRIMARY KEY,
			balance BIGINT NOT NULL DEFAULT 0,
			last_claim_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_accounts_balance ON accounts(balance DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: accounts table created")

	// Migration 2: Create transactions table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			identity TEXT NOT NULL,
			amount BIGINT NOT NULL,
			type VARCHAR(50) NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_identity_time ON transactions(identity, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_transactions_type_time ON transactions(type, created_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: transactions table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
