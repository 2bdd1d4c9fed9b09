package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/shoppinglist/internal/flagx"
	"github.com/dmitrijs2005/shoppinglist/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations
// accept "1h" style strings or integer seconds.
type JsonConfig struct {
	ServerAddress string         `json:"server_address"`
	DatabaseDSN   string         `json:"database_dsn"`
	Storage       string         `json:"storage"`
	SecretKey     string         `json:"secret_key"`
	TokenTTL      timex.Duration `json:"token_ttl"`
	BcryptCost    int            `json:"bcrypt_cost"`
	LogLevel      string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// non-zero field into config. An unreadable or malformed file panics: the
// server must not start on a half-applied configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerAddress != "" {
		config.ServerAddress = c.ServerAddress
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.Storage != "" {
		config.Storage = c.Storage
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration > 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
