package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/shopkeeper/internal/flagx"
	"github.com/dmitrijs2005/shopkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// accept both "15m"-style strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC                  string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                       string         `json:"database_dsn"`
	SecretKey                         string         `json:"secret_key"`
	SessionTokenValidityDuration      timex.Duration `json:"session_token_validity_duration"`
	SecondFactorTokenValidityDuration timex.Duration `json:"second_factor_token_validity_duration"`
	PasswordPepper                    string         `json:"password_pepper"`
	SessionRegistry                   string         `json:"session_registry"`
	RedisAddr                         string         `json:"redis_addr"`
	ApplicationDomain                 string         `json:"application_domain"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $SHOPKEEPER_CONFIG). Keys missing from the file keep their current value.
// An unreadable or malformed file panics.
func parseJson(config *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.PasswordPepper, c.PasswordPepper)
	setString(&config.SessionRegistry, c.SessionRegistry)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.ApplicationDomain, c.ApplicationDomain)

	if c.SessionTokenValidityDuration.Duration != 0 {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.SecondFactorTokenValidityDuration.Duration != 0 {
		config.SecondFactorTokenValidityDuration = c.SecondFactorTokenValidityDuration.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
