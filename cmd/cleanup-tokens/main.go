// Command cleanup-tokens deletes expired and revoked refresh tokens.
//
// Usage:
//
//	cleanup-tokens
//
// Reads the DATABASE_* environment variables; DATABASE_DSN is required.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/footprints-app/footprints-backend/internal/adapter/postgres"
	"github.com/footprints-app/footprints-backend/internal/adapter/postgres/token"
	"github.com/footprints-app/footprints-backend/internal/config"
)

func main() {
	var cfg config.DatabaseConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("read config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	deleted, err := token.New(pool).DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Fatalf("cleanup tokens: %v", err)
	}

	fmt.Printf("Deleted %d expired/revoked refresh tokens.\n", deleted)
}
