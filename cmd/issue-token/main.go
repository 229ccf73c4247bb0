// Command issue-token prints a signed access token for a ledger principal.
// It is used to bootstrap the first admin and to hand tokens to operators.
//
// Usage:
//
//	issue-token --address=GABC... [--role=admin] [--ttl=24h]
//
// Requires AUTH_JWT_SECRET to be set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/aidflow/fundflow-backend/internal/auth"
	"github.com/aidflow/fundflow-backend/internal/config"
)

func main() {
	address := flag.String("address", "", "ledger address of the principal")
	role := flag.String("role", "", "optional role, e.g. admin")
	ttl := flag.Duration("ttl", 0, "token lifetime (default: AUTH_ACCESS_TTL)")
	flag.Parse()

	if *address == "" {
		fmt.Fprintln(os.Stderr, "Usage: issue-token --address=GABC... [--role=admin] [--ttl=24h]")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Auth.Enabled() {
		log.Fatal("AUTH_JWT_SECRET is required")
	}

	lifetime := cfg.Auth.AccessTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, lifetime).
		GenerateAccessToken(auth.Principal{Address: *address, Role: *role})
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Now().Add(lifetime).UTC().Format(time.RFC3339))
}
