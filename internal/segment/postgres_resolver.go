package segment

import (
	"context"
	"errors"
	"fmt"

	"cart-offer/internal/offer"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresResolver implements Resolver by reading the user_segments table.
type postgresResolver struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresResolver creates a PostgreSQL-backed segment resolver.
func NewPostgresResolver(pool *pgxpool.Pool, logger zerolog.Logger) Resolver {
	return &postgresResolver{
		pool:   pool,
		logger: logger.With().Str("component", "segment-postgres-resolver").Logger(),
	}
}

// Resolve reads the segment for userID.
func (r *postgresResolver) Resolve(ctx context.Context, userID int) (offer.Segment, error) {
	query := `
		SELECT segment
		FROM user_segments
		WHERE user_id = $1
	`

	var segment string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&segment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("user_id", userID).Msg("user segment not found")
			return "", ErrUnresolved
		}
		return "", fmt.Errorf("failed to query segment for user %d: %w", userID, err)
	}

	if segment == "" {
		return "", ErrUnresolved
	}

	return offer.Segment(segment), nil
}
