//go:build ignore

// Command seed_user_segments loads sample users into the user_segments table
// read when SEGMENT_SOURCE=postgres.
//
//	go run scripts/seed_user_segments.go
package main

import (
	"context"
	"fmt"
	"os"

	"cart-offer/internal/config"
	"cart-offer/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Schema setup failed: %v\n", err)
		os.Exit(1)
	}

	users := map[int]string{1: "p1", 2: "p2", 3: "p3"}

	batch := &pgx.Batch{}
	for id, seg := range users {
		batch.Queue(
			`INSERT INTO user_segments (user_id, segment) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO UPDATE SET segment = EXCLUDED.segment`,
			id, seg,
		)
	}

	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Insert failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d users into user_segments\n", len(users))
}
