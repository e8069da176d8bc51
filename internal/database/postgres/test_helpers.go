package postgres

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osmunda/cardbot/internal/database/schema"
)

var (
	testPoolOnce sync.Once
	sharedPool   *pgxpool.Pool
	testPoolErr  error
)

// testPool returns a migrated pool against TEST_DATABASE_URL, or skips the
// test when no database is configured. The pool is shared across the package;
// tests isolate themselves with distinct user IDs rather than truncation.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	testPoolOnce.Do(func() {
		ctx := context.Background()
		sharedPool, testPoolErr = pgxpool.New(ctx, connString)
		if testPoolErr != nil {
			return
		}
		testPoolErr = schema.Migrate(ctx, sharedPool)
	})
	if testPoolErr != nil {
		t.Fatalf("failed to prepare test database: %v", testPoolErr)
	}
	return sharedPool
}

// seedItem inserts a catalog row, replacing any previous definition.
func seedItem(t *testing.T, pool *pgxpool.Pool, code, name string, rarity int, category string, pullable bool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO items (item_code, name, rarity, category, pullable)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (item_code) DO UPDATE
		SET name = EXCLUDED.name, rarity = EXCLUDED.rarity,
		    category = EXCLUDED.category, pullable = EXCLUDED.pullable
	`, code, name, rarity, category, pullable)
	if err != nil {
		t.Fatalf("failed to seed item %s: %v", code, err)
	}
}
