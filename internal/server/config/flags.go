package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN ("" = in-memory storage)
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-f int      second factor ticket validity, minutes
//	-p string   password pepper
//	-k string   session registry: memory | redis
//	-r string   redis address
//	-n string   application mail domain
//
// Duration flags are integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-f", "-p", "-k", "-r", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session_token_validity_duration (in minutes)")
	ticketValidity := fs.Int("f", int(config.SecondFactorTokenValidityDuration.Minutes()), "second_factor_token_validity_duration (in minutes)")

	fs.StringVar(&config.PasswordPepper, "p", config.PasswordPepper, "password pepper")
	fs.StringVar(&config.SessionRegistry, "k", config.SessionRegistry, "session registry (memory|redis)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.ApplicationDomain, "n", config.ApplicationDomain, "application mail domain")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTokenValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.SecondFactorTokenValidityDuration = time.Duration(*ticketValidity) * time.Minute
}
