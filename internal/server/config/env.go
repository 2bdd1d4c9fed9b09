package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded into the process environment if it exists. Variables
// already set in the environment win over the file. A file that exists but
// cannot be read or parsed panics, like a bad JSON config.
var envFile = ".env"

// parseEnv overlays settings from environment variables:
//
//	SERVER_ADDRESS               HTTP bind address
//	DATABASE_URL                 PostgreSQL DSN
//	STORAGE                      "postgres" or "memory"
//	SECRET_KEY                   token signing key
//	AUTH_EXPIRY_TIME_IN_SECONDS  token lifetime
//	BCRYPT_COST                  password hashing cost
//	LOG_LEVEL                    debug|info|warn|error
func parseEnv(config *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("env file %s: %w", envFile, err))
	}

	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok && v != "" {
		config.ServerAddress = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("STORAGE"); ok && v != "" {
		config.Storage = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("AUTH_EXPIRY_TIME_IN_SECONDS"); ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			config.TokenTTL = time.Duration(secs) * time.Second
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		config.LogLevel = v
	}
}
