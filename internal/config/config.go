// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot        BotConfig        `mapstructure:"bot"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Dispatcher DispatcherConfig `mapstructure:"dispatcher"`
	Weekly     WeeklyConfig     `mapstructure:"weekly"`
	Games      GamesConfig      `mapstructure:"games"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Data       DataConfig       `mapstructure:"data"`
}

// BotConfig holds chat platform bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// DispatcherConfig holds message dispatch configuration.
type DispatcherConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

// WeeklyConfig holds weekly bean claim configuration.
type WeeklyConfig struct {
	Reward       int64 `mapstructure:"reward"`
	CooldownDays int   `mapstructure:"cooldown_days"`
}

// GamesConfig holds game-specific configuration.
type GamesConfig struct {
	Baccarat  BaccaratConfig  `mapstructure:"baccarat"`
	Blackjack BlackjackConfig `mapstructure:"blackjack"`
}

// BaccaratConfig holds baccarat game configuration.
type BaccaratConfig struct {
	Decks int `mapstructure:"decks"`
}

// BlackjackConfig holds blackjack game configuration.
type BlackjackConfig struct {
	Decks int `mapstructure:"decks"`
}

// ChatConfig holds the conversational fallback configuration.
type ChatConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	MaxWindows int    `mapstructure:"max_windows"`
	MaxUsers   int    `mapstructure:"max_users"`
}

// DataConfig holds paths for generated data files.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Enable environment variable override
	// Environment variables use underscore separator and uppercase
	// e.g., BOT_TOKEN, DATABASE_HOST, CHAT_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - env vars can provide all config)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we can use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "gamebot")
	v.SetDefault("database.name", "gamebot")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Dispatcher defaults
	v.SetDefault("dispatcher.workers", 5)
	v.SetDefault("dispatcher.queue_size", 100)

	// Weekly claim defaults
	v.SetDefault("weekly.reward", 10000)
	v.SetDefault("weekly.cooldown_days", 7)

	// Game defaults
	v.SetDefault("games.baccarat.decks", 6)
	v.SetDefault("games.blackjack.decks", 1)

	// Chat defaults
	v.SetDefault("chat.base_url", "https://api.openai.com/v1")
	v.SetDefault("chat.model", "gpt-3.5-turbo")
	v.SetDefault("chat.max_windows", 5)
	v.SetDefault("chat.max_users", 100)

	// Data defaults
	v.SetDefault("data.dir", "./data")
}
