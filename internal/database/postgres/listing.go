package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osmunda/cardbot/internal/domain"
)

// ListingRepository implements marketplace listing persistence for PostgreSQL.
type ListingRepository struct {
	db *pgxpool.Pool
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

// CreateListing inserts a listing; a taken buy code yields
// domain.ErrConflictOnCreate so the code issuer can retry.
func (r *ListingRepository) CreateListing(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (buy_code, seller_id, item_code, price, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		listing.BuyCode, listing.SellerID, listing.ItemCode, listing.Price).Scan(&listing.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("buy code %s: %w", listing.BuyCode, domain.ErrConflictOnCreate)
		}
		return classifyError(fmt.Errorf("failed to create listing: %w", err))
	}
	return nil
}

// GetListing returns the live listing or domain.ErrListingNotFound.
func (r *ListingRepository) GetListing(ctx context.Context, buyCode string) (*domain.Listing, error) {
	query := `
		SELECT buy_code, seller_id, item_code, price, created_at
		FROM listings
		WHERE buy_code = $1
	`
	var l domain.Listing
	err := r.db.QueryRow(ctx, query, buyCode).Scan(&l.BuyCode, &l.SellerID, &l.ItemCode, &l.Price, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, buyCode)
		}
		return nil, classifyError(fmt.Errorf("failed to get listing: %w", err))
	}
	return &l, nil
}

// ListListings returns the newest live listings up to limit.
func (r *ListingRepository) ListListings(ctx context.Context, limit int) ([]domain.Listing, error) {
	query := `
		SELECT buy_code, seller_id, item_code, price, created_at
		FROM listings
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.queryListings(ctx, query, limit)
}

// ListListingsBySeller returns a seller's live listings, newest first.
func (r *ListingRepository) ListListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	query := `
		SELECT buy_code, seller_id, item_code, price, created_at
		FROM listings
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`
	return r.queryListings(ctx, query, sellerID)
}

// DeleteListing removes the listing or reports domain.ErrListingNotFound.
func (r *ListingRepository) DeleteListing(ctx context.Context, buyCode string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE buy_code = $1`, buyCode)
	if err != nil {
		return classifyError(fmt.Errorf("failed to delete listing: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrListingNotFound, buyCode)
	}
	return nil
}

func (r *ListingRepository) queryListings(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list listings: %w", err))
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.BuyCode, &l.SellerID, &l.ItemCode, &l.Price, &l.CreatedAt); err != nil {
			return nil, classifyError(fmt.Errorf("failed to scan listing: %w", err))
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to read listing rows: %w", err))
	}
	return listings, nil
}
