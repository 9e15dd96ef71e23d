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
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "60", "-f", "2", "-p", "salt", "-k", "redis", "-r", "redis:6379", "-n", "shop.local",
			},
			expected: &Config{
				EndpointAddrGRPC:                  "127.0.0.1:9090",
				DatabaseDSN:                       "db",
				SecretKey:                         "secret",
				SessionTokenValidityDuration:      60 * time.Minute,
				SecondFactorTokenValidityDuration: 2 * time.Minute,
				PasswordPepper:                    "salt",
				SessionRegistry:                   "redis",
				RedisAddr:                         "redis:6379",
				ApplicationDomain:                 "shop.local",
			},
		},
		{
			name:        "bad integer panics",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
