package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Port  int         `mapstructure:"PORT"`
	Env   string      `mapstructure:"ENV"`
	Seed  SeedConfig  `mapstructure:"SEED"`
	Audit AuditConfig `mapstructure:"AUDIT"`
}

// SeedConfig lists accounts provisioned at startup, encoded as
// "id:balance,id:balance" so it fits in a single env var.
type SeedConfig struct {
	Accounts string `mapstructure:"ACCOUNTS"`
}

type AuditConfig struct {
	Interval time.Duration `mapstructure:"INTERVAL"`
}

type SeedAccount struct {
	ID      string
	Balance decimal.Decimal
}

func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("PORT", 4000)
	v.SetDefault("ENV", "development")
	v.SetDefault("SEED.ACCOUNTS", "")
	v.SetDefault("AUDIT.INTERVAL", 15*time.Second)

	// Look for .env file
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Read .env file if it exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file, %s. Using defaults and environment variables.\n", err)
	}

	// Override with environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("TRANSACTION_VALIDATOR")

	// Replace dots with underscores for nested keys in environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

// SeedAccounts parses the SEED.ACCOUNTS list. An empty list is not an error.
func (c *Config) SeedAccounts() ([]SeedAccount, error) {
	raw := strings.TrimSpace(c.Seed.Accounts)
	if raw == "" {
		return nil, nil
	}

	var seeds []SeedAccount
	for _, entry := range strings.Split(raw, ",") {
		id, bal, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok {
			return nil, fmt.Errorf("malformed seed account %q, want id:balance", entry)
		}
		balance, err := decimal.NewFromString(strings.TrimSpace(bal))
		if err != nil {
			return nil, fmt.Errorf("malformed seed balance for %q: %w", id, err)
		}
		seeds = append(seeds, SeedAccount{ID: strings.TrimSpace(id), Balance: balance})
	}
	return seeds, nil
}
