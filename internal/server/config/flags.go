package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/shoppinglist/internal/flagx"
)

// parseFlags populates Config fields from command-line flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN
//	-m string   storage backend: postgres or memory
//	-s string   token signing key
//	-t int      token lifetime, seconds
//	-b int      bcrypt cost
//	-l string   log level
//
// Unknown flags are filtered out first so -c/-config can coexist.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-m", "-s", "-t", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerAddress, "a", config.ServerAddress, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage backend (postgres|memory)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int("t", int(config.TokenTTL.Seconds()), "token validity (in seconds)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenTTL = time.Duration(*ttl) * time.Second
}
