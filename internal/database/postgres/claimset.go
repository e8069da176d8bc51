package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osmunda/cardbot/internal/domain"
)

// ClaimSetRepository implements shared drop persistence for PostgreSQL.
type ClaimSetRepository struct {
	db *pgxpool.Pool
}

// NewClaimSetRepository creates a new ClaimSetRepository
func NewClaimSetRepository(db *pgxpool.Pool) *ClaimSetRepository {
	return &ClaimSetRepository{db: db}
}

// CreateClaimSet inserts the set and its slots in one transaction.
func (r *ClaimSetRepository) CreateClaimSet(ctx context.Context, set *domain.ClaimSet) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(fmt.Errorf("failed to begin claim set transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insertSet := `
		INSERT INTO claim_sets (set_id, one_per_user, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err = tx.QueryRow(ctx, insertSet, set.ID, set.OnePerUser, set.ExpiresAt).Scan(&set.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("claim set %s: %w", set.ID, domain.ErrConflictOnCreate)
		}
		return classifyError(fmt.Errorf("failed to create claim set: %w", err))
	}

	insertSlot := `
		INSERT INTO claim_slots (set_id, slot_index, item_code)
		VALUES ($1, $2, $3)
	`
	for i := range set.Slots {
		set.Slots[i].SetID = set.ID
		set.Slots[i].SlotIndex = i
		if _, err := tx.Exec(ctx, insertSlot, set.ID, i, set.Slots[i].ItemCode); err != nil {
			return classifyError(fmt.Errorf("failed to create claim slot %d: %w", i, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(fmt.Errorf("failed to commit claim set: %w", err))
	}
	return nil
}

// GetClaimSet returns the set with its slots and participant list, or
// domain.ErrClaimSetNotFound.
func (r *ClaimSetRepository) GetClaimSet(ctx context.Context, setID uuid.UUID) (*domain.ClaimSet, error) {
	setQuery := `
		SELECT set_id, one_per_user, expires_at, created_at
		FROM claim_sets
		WHERE set_id = $1
	`
	var set domain.ClaimSet
	err := r.db.QueryRow(ctx, setQuery, setID).Scan(&set.ID, &set.OnePerUser, &set.ExpiresAt, &set.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrClaimSetNotFound, setID)
		}
		return nil, classifyError(fmt.Errorf("failed to get claim set: %w", err))
	}

	slotQuery := `
		SELECT set_id, slot_index, item_code, claimant_id, claimed_at
		FROM claim_slots
		WHERE set_id = $1
		ORDER BY slot_index
	`
	rows, err := r.db.Query(ctx, slotQuery, setID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to get claim slots: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.ClaimSlot
		if err := rows.Scan(&s.SetID, &s.SlotIndex, &s.ItemCode, &s.ClaimantID, &s.ClaimedAt); err != nil {
			return nil, classifyError(fmt.Errorf("failed to scan claim slot: %w", err))
		}
		set.Slots = append(set.Slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to read claim slot rows: %w", err))
	}

	claimerQuery := `
		SELECT user_id
		FROM claim_participants
		WHERE set_id = $1
		ORDER BY claimed_at
	`
	crows, err := r.db.Query(ctx, claimerQuery, setID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to get claim participants: %w", err))
	}
	defer crows.Close()

	for crows.Next() {
		var userID string
		if err := crows.Scan(&userID); err != nil {
			return nil, classifyError(fmt.Errorf("failed to scan claim participant: %w", err))
		}
		set.Claimers = append(set.Claimers, userID)
	}
	if err := crows.Err(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to read claim participant rows: %w", err))
	}

	return &set, nil
}

// ClaimSlot resolves a claim with one conditional statement. The slot update
// only fires when the set is live, the slot unclaimed, and the user eligible;
// for one-per-user sets the participant insert rides in the same statement,
// so a losing condition mutates nothing. Concurrent claims by the same user
// on a one-per-user set collide on the participants primary key and roll the
// whole statement back.
func (r *ClaimSetRepository) ClaimSlot(ctx context.Context, setID uuid.UUID, slotIndex int, userID string) (*domain.ClaimSlot, error) {
	query := `
		WITH eligible AS (
		    SELECT set_id, one_per_user
		    FROM claim_sets
		    WHERE set_id = $1
		      AND expires_at > NOW()
		      AND (NOT one_per_user OR NOT EXISTS (
		          SELECT 1 FROM claim_participants
		          WHERE set_id = $1 AND user_id = $3
		      ))
		), claimed AS (
		    UPDATE claim_slots
		    SET claimant_id = $3, claimed_at = NOW()
		    WHERE set_id = $1 AND slot_index = $2 AND claimant_id IS NULL
		      AND EXISTS (SELECT 1 FROM eligible)
		    RETURNING slot_index, item_code, claimed_at
		), participant AS (
		    INSERT INTO claim_participants (set_id, user_id, claimed_at)
		    SELECT $1, $3, claimed_at FROM claimed
		    WHERE (SELECT one_per_user FROM eligible)
		)
		SELECT slot_index, item_code, claimed_at FROM claimed
	`
	slot := domain.ClaimSlot{SetID: setID, ClaimantID: &userID}
	err := r.db.QueryRow(ctx, query, setID, slotIndex, userID).Scan(&slot.SlotIndex, &slot.ItemCode, &slot.ClaimedAt)
	if err == nil {
		return &slot, nil
	}
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyParticipated
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, classifyError(fmt.Errorf("failed to claim slot: %w", err))
	}

	// No row claimed. Diagnose which condition failed so the caller gets a
	// specific error; reads here are advisory and never mutate.
	return nil, r.diagnoseClaimFailure(ctx, setID, slotIndex, userID)
}

func (r *ClaimSetRepository) diagnoseClaimFailure(ctx context.Context, setID uuid.UUID, slotIndex int, userID string) error {
	var onePerUser bool
	var expiresAt time.Time
	err := r.db.QueryRow(ctx,
		`SELECT one_per_user, expires_at FROM claim_sets WHERE set_id = $1`,
		setID).Scan(&onePerUser, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrClaimSetNotFound, setID)
		}
		return classifyError(fmt.Errorf("failed to diagnose claim: %w", err))
	}
	if !time.Now().Before(expiresAt) {
		return domain.ErrExpired
	}

	if onePerUser {
		var participated bool
		err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM claim_participants WHERE set_id = $1 AND user_id = $2)`,
			setID, userID).Scan(&participated)
		if err != nil {
			return classifyError(fmt.Errorf("failed to diagnose claim: %w", err))
		}
		if participated {
			return domain.ErrAlreadyParticipated
		}
	}

	var claimed bool
	err = r.db.QueryRow(ctx,
		`SELECT claimant_id IS NOT NULL FROM claim_slots WHERE set_id = $1 AND slot_index = $2`,
		setID, slotIndex).Scan(&claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: slot %d", domain.ErrClaimSetNotFound, slotIndex)
		}
		return classifyError(fmt.Errorf("failed to diagnose claim: %w", err))
	}
	if claimed {
		return domain.ErrAlreadyClaimed
	}

	// The blocking condition resolved between the claim and the diagnosis.
	// Report the slot as contested; the caller may retry.
	return domain.ErrAlreadyClaimed
}

// DeleteExpired removes sets past their expiry; slots and participants go
// with them via ON DELETE CASCADE.
func (r *ClaimSetRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM claim_sets WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, classifyError(fmt.Errorf("failed to delete expired claim sets: %w", err))
	}
	return int(tag.RowsAffected()), nil
}
