package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/joho/godotenv"
)

// Config is the server configuration read from TYCOON_* environment variables.
type Config struct {
	Port           int      `env:"TYCOON_PORT" envDefault:"8080"`
	DatabaseURL    string   `env:"TYCOON_DATABASE_URL" envDefault:"memory://"`
	MigrationsDir  string   `env:"TYCOON_MIGRATIONS_DIR" envDefault:"./migrations"`
	LogLevel       string   `env:"TYCOON_LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"TYCOON_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	MaxPlayers           int           `env:"TYCOON_MAX_PLAYERS" envDefault:"8"`
	ConflictRetries      int           `env:"TYCOON_CONFLICT_RETRIES" envDefault:"3"`
	LogLimit             int           `env:"TYCOON_LOG_LIMIT" envDefault:"100"`
	AuctionSweepInterval time.Duration `env:"TYCOON_AUCTION_SWEEP_INTERVAL" envDefault:"1s"`

	StartingMoney   int           `env:"TYCOON_STARTING_MONEY" envDefault:"1500"`
	GoSalary        int           `env:"TYCOON_GO_SALARY" envDefault:"200"`
	Bail            int           `env:"TYCOON_BAIL" envDefault:"50"`
	AuctionDuration time.Duration `env:"TYCOON_AUCTION_DURATION" envDefault:"10s"`
	AuctionFloor    int           `env:"TYCOON_AUCTION_FLOOR" envDefault:"10"`
}

// Load reads the configuration from the environment. When envFiles are
// given they are loaded first; variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxPlayers < 2 {
		return fmt.Errorf("max players must be at least 2, got %d", c.MaxPlayers)
	}
	if c.StartingMoney < 0 || c.GoSalary < 0 || c.Bail < 0 || c.AuctionFloor < 0 {
		return fmt.Errorf("rule amounts must not be negative")
	}
	if c.AuctionDuration <= 0 {
		return fmt.Errorf("auction duration must be positive, got %s", c.AuctionDuration)
	}
	if c.AuctionSweepInterval <= 0 {
		return fmt.Errorf("auction sweep interval must be positive, got %s", c.AuctionSweepInterval)
	}
	return nil
}

// RuleConfig returns the rule values for the engine.
func (c *Config) RuleConfig() *engine.RuleConfig {
	return &engine.RuleConfig{
		StartingMoney:   c.StartingMoney,
		GoSalary:        c.GoSalary,
		Bail:            c.Bail,
		AuctionDuration: c.AuctionDuration,
		AuctionFloor:    c.AuctionFloor,
	}
}
