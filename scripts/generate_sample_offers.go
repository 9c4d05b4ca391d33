//go:build ignore

// Command generate_sample_offers writes a gzipped JSON-lines seed file.
//
//	go run scripts/generate_sample_offers.go
package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cart-offer/internal/model"
)

func main() {
	dataDir := "data/offers"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	offers := []*model.OfferRequest{
		{RestaurantID: 1, OfferType: "FLATX", OfferValue: 10, CustomerSegments: []string{"p1"}},
		{RestaurantID: 1, OfferType: "PERCENTAGE", OfferValue: 10, CustomerSegments: []string{"p2"}},
		{RestaurantID: 2, OfferType: "PERCENTAGE", OfferValue: 25, CustomerSegments: []string{"p1", "p2", "p3"}},
		{RestaurantID: 3, OfferType: "FLATX", OfferValue: 50, CustomerSegments: []string{"p3"}},
		// Rejected on load: unknown segment.
		{RestaurantID: 4, OfferType: "FLATX", OfferValue: 5, CustomerSegments: []string{"p9"}},
	}

	filePath := filepath.Join(dataDir, "seed.jsonl.gz")
	if err := createOfferFile(filePath, offers); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d offers\n", filePath, len(offers))
	fmt.Println("\nStart the server with:")
	fmt.Printf("  SEED_ENABLED=true SEED_FILES=%s go run ./cmd/api\n", filePath)
}

func createOfferFile(filePath string, offers []*model.OfferRequest) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, o := range offers {
		if err := encoder.Encode(o); err != nil {
			return fmt.Errorf("failed to write offer: %w", err)
		}
	}

	return nil
}
