package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"stockfolio/alphavantage"
)

// configFile is looked up in the working directory.
const configFile = "stockfolio.toml"

// Config is the on-disk configuration. Every field has a working default
// so a missing file just means local stores in the current directory.
type Config struct {
	Prices string `toml:"prices"`
	Ledger string `toml:"ledger"`
	APIKey string `toml:"api_key"`
}

func defaultConfig() Config {
	return Config{Prices: "prices.csv", Ledger: "ledger.csv"}
}

// loadConfig reads stockfolio.toml and a .env file if present. The
// ALPHAVANTAGE_API_KEY environment variable wins over the config file.
func loadConfig() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if content, err := os.ReadFile(configFile); err == nil {
		_ = toml.Unmarshal(content, &cfg)
	}
	if key := os.Getenv(alphavantage.EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	return cfg
}

// saveConfig writes the configuration back to stockfolio.toml.
func saveConfig(cfg Config) error {
	content, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configFile, content, 0o644)
}
