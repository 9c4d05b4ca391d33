package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cart-offer/internal/model"
	"cart-offer/internal/offer"

	"github.com/rs/zerolog"
)

// Loader reads a seed file of offer requests.
type Loader interface {
	// Load reads a gzipped seed file holding one JSON offer request per line.
	Load(ctx context.Context, path string) ([]*model.OfferRequest, error)
}

// OfferCreator accepts offers into the store.
type OfferCreator interface {
	CreateOffer(ctx context.Context, req *model.OfferRequest) (offer.Offer, error)
}

// Result summarises a seeding run.
type Result struct {
	Files    int
	Accepted int
	Rejected int
}

// Seed loads every file in order and submits each entry through creator, so
// seeded offers are validated and keep file order. A load failure aborts the
// run; rejected entries are counted and skipped.
func Seed(ctx context.Context, creator OfferCreator, loader Loader, paths []string, logger zerolog.Logger) (Result, error) {
	logger = logger.With().Str("component", "offer-seeder").Logger()

	var res Result
	for _, path := range paths {
		requests, err := loader.Load(ctx, path)
		if err != nil {
			return res, fmt.Errorf("failed to load seed file %s: %w", path, err)
		}
		res.Files++

		for i, req := range requests {
			if _, err := creator.CreateOffer(ctx, req); err != nil {
				res.Rejected++
				logger.Warn().
					Err(err).
					Str("file", path).
					Int("line", i+1).
					Msg("seed offer rejected")
				continue
			}
			res.Accepted++
		}
	}

	logger.Info().
		Int("files", res.Files).
		Int("accepted", res.Accepted).
		Int("rejected", res.Rejected).
		Msg("offer seeding completed")

	return res, nil
}

// decodeOffers reads gzipped JSON lines from r. Blank lines are skipped.
func decodeOffers(ctx context.Context, r io.Reader) ([]*model.OfferRequest, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var requests []*model.OfferRequest
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req *model.OfferRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			return nil, fmt.Errorf("invalid offer on line %d: %w", lineNo, err)
		}
		requests = append(requests, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	return requests, nil
}
