package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-m", "memory", "-s", "secret",
			"-t", "3", "-b", "4", "-l", "debug",
		}, expected: &Config{
			ServerAddress: "127.0.0.1:9090",
			DatabaseDSN:   "db",
			Storage:       "memory",
			SecretKey:     "secret",
			TokenTTL:      3 * time.Second,
			BcryptCost:    4,
			LogLevel:      "debug",
		}},
		{name: "config flag is left alone", args: []string{"cmd", "-c", "conf.json", "-t", "60"},
			expected: &Config{TokenTTL: time.Minute}},
		{name: "bad int panics", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
