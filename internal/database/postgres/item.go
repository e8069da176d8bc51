package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osmunda/cardbot/internal/domain"
)

// ItemRepository implements read-only catalog lookups for PostgreSQL.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// GetItemByCode returns the definition or domain.ErrItemNotFound.
func (r *ItemRepository) GetItemByCode(ctx context.Context, itemCode string) (*domain.ItemDefinition, error) {
	query := `
		SELECT item_code, name, rarity, category, grp, era, pullable
		FROM items
		WHERE item_code = $1
	`
	var d domain.ItemDefinition
	err := r.db.QueryRow(ctx, query, itemCode).Scan(
		&d.Code, &d.Name, &d.Rarity, &d.Category, &d.Group, &d.Era, &d.Pullable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemCode)
		}
		return nil, classifyError(fmt.Errorf("failed to get item: %w", err))
	}
	return &d, nil
}

// GetPullableItems returns every item eligible for the pull pool.
func (r *ItemRepository) GetPullableItems(ctx context.Context) ([]domain.ItemDefinition, error) {
	query := `
		SELECT item_code, name, rarity, category, grp, era, pullable
		FROM items
		WHERE pullable
		ORDER BY item_code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to get pullable items: %w", err))
	}
	defer rows.Close()

	var items []domain.ItemDefinition
	for rows.Next() {
		var d domain.ItemDefinition
		if err := rows.Scan(&d.Code, &d.Name, &d.Rarity, &d.Category, &d.Group, &d.Era, &d.Pullable); err != nil {
			return nil, classifyError(fmt.Errorf("failed to scan item: %w", err))
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to read item rows: %w", err))
	}
	return items, nil
}
