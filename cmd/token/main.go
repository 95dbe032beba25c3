package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iamasit07/connectn/internal/config"
	"github.com/iamasit07/connectn/pkg/auth"
	"github.com/rs/zerolog/log"
)

// token prints a bearer token for the benchmark API signed with JWT_SECRET.
func main() {
	envErr := config.LoadEnvFile()
	cfg := config.LoadConfig()
	config.SetupLogging(cfg.LogLevel, "console", os.Stderr)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	subject := flag.String("subject", "cli", "token subject")
	ttl := flag.Duration("ttl", cfg.TokenTTL, "token lifetime")
	flag.Parse()

	token, err := auth.GenerateToken(cfg.JWTSecret, *subject, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("token-failed")
	}
	fmt.Println(token)
}
