package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osmunda/cardbot/internal/domain"
)

// InventoryRepository implements item stack persistence for PostgreSQL.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetInventory returns all stacks owned by a user, largest first.
func (r *InventoryRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	query := `
		SELECT user_id, item_code, quantity, updated_at
		FROM inventory_entries
		WHERE user_id = $1
		ORDER BY quantity DESC, item_code
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to get inventory: %w", err))
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.UserID, &e.ItemCode, &e.Quantity, &e.UpdatedAt); err != nil {
			return nil, classifyError(fmt.Errorf("failed to scan inventory entry: %w", err))
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to read inventory rows: %w", err))
	}
	return entries, nil
}

// GetInventoryEntry returns one stack or nil when the user owns none.
func (r *InventoryRepository) GetInventoryEntry(ctx context.Context, userID, itemCode string) (*domain.InventoryEntry, error) {
	query := `
		SELECT user_id, item_code, quantity, updated_at
		FROM inventory_entries
		WHERE user_id = $1 AND item_code = $2
	`
	var e domain.InventoryEntry
	err := r.db.QueryRow(ctx, query, userID, itemCode).Scan(&e.UserID, &e.ItemCode, &e.Quantity, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyError(fmt.Errorf("failed to get inventory entry: %w", err))
	}
	return &e, nil
}

// GrantItem upserts a stack, incrementing an existing row atomically.
func (r *InventoryRepository) GrantItem(ctx context.Context, userID, itemCode string, qty int) error {
	query := `
		INSERT INTO inventory_entries (user_id, item_code, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, item_code) DO UPDATE
		SET quantity = inventory_entries.quantity + EXCLUDED.quantity,
		    updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, userID, itemCode, qty); err != nil {
		return classifyError(fmt.Errorf("failed to grant item: %w", err))
	}
	return nil
}

// ConsumeItem checks and decrements as a single conditional statement.
// Postgres skips a CTE delete of a row updated in the same statement, so the
// two branches must target disjoint rows: an exact-quantity stack is deleted,
// a larger stack is decremented. Either way a zero-quantity row never
// persists.
func (r *InventoryRepository) ConsumeItem(ctx context.Context, userID, itemCode string, qty int) error {
	query := `
		WITH emptied AS (
		    DELETE FROM inventory_entries
		    WHERE user_id = $1 AND item_code = $2 AND quantity = $3
		    RETURNING 0 AS remaining
		), decremented AS (
		    UPDATE inventory_entries
		    SET quantity = quantity - $3, updated_at = NOW()
		    WHERE user_id = $1 AND item_code = $2 AND quantity > $3
		    RETURNING quantity AS remaining
		)
		SELECT remaining FROM emptied
		UNION ALL
		SELECT remaining FROM decremented
	`
	var remaining int
	err := r.db.QueryRow(ctx, query, userID, itemCode, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInsufficientStock
		}
		return classifyError(fmt.Errorf("failed to consume item: %w", err))
	}
	return nil
}

// MergeInventories folds src's stacks into dst and empties src. Runs in a
// transaction so a half-merged source is never observable.
func (r *InventoryRepository) MergeInventories(ctx context.Context, srcUserID, dstUserID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(fmt.Errorf("failed to begin merge transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	merge := `
		INSERT INTO inventory_entries (user_id, item_code, quantity, updated_at)
		SELECT $2, item_code, quantity, NOW()
		FROM inventory_entries
		WHERE user_id = $1
		ON CONFLICT (user_id, item_code) DO UPDATE
		SET quantity = inventory_entries.quantity + EXCLUDED.quantity,
		    updated_at = NOW()
	`
	if _, err := tx.Exec(ctx, merge, srcUserID, dstUserID); err != nil {
		return classifyError(fmt.Errorf("failed to merge inventories: %w", err))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM inventory_entries WHERE user_id = $1`, srcUserID); err != nil {
		return classifyError(fmt.Errorf("failed to clear source inventory: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(fmt.Errorf("failed to commit merge: %w", err))
	}
	return nil
}
