package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"cart-offer/internal/database"
	"cart-offer/internal/model"
	"cart-offer/internal/segment"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container holding the user_segments table.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedUserSegments inserts user to segment assignments.
func SeedUserSegments(t *testing.T, pool *pgxpool.Pool, users map[int]string) {
	t.Helper()

	ctx := context.Background()
	for id, seg := range users {
		_, err := pool.Exec(ctx,
			"INSERT INTO user_segments (user_id, segment) VALUES ($1, $2)",
			id, seg,
		)
		if err != nil {
			t.Fatalf("failed to seed user %d: %v", id, err)
		}
	}
}

// CleanupDB removes all user segments.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM user_segments"); err != nil {
		t.Logf("failed to clean user_segments: %v", err)
	}
}

// SegmentStub serves the user segment lookup from a fixed table. Unknown users
// get a 404.
type SegmentStub struct {
	*httptest.Server
	Calls atomic.Int64
}

// NewSegmentStub starts a segment service stub. delay is applied to every
// response.
func NewSegmentStub(t *testing.T, users map[int]string, delay time.Duration) *SegmentStub {
	t.Helper()

	stub := &SegmentStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.Calls.Add(1)

		if r.URL.Path != segment.SegmentPath {
			http.NotFound(w, r)
			return
		}

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		id, err := strconv.Atoi(r.URL.Query().Get("user_id"))
		if err != nil {
			http.Error(w, "bad user_id", http.StatusBadRequest)
			return
		}

		seg, ok := users[id]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.SegmentResponse{Segment: seg})
	}))
	t.Cleanup(stub.Close)

	return stub
}
