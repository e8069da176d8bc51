package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound   = "account not found"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Item / inventory errors
	ErrMsgItemNotFound      = "item not found"
	ErrMsgInsufficientStock = "insufficient stock"

	// Validation errors
	ErrMsgValidation = "validation failed"

	// Market errors
	ErrMsgListingNotFound  = "listing not found"
	ErrMsgSelfPurchase     = "cannot buy own listing"
	ErrMsgConflictOnCreate = "unique code collision exhausted"
	ErrMsgPriceOverCap     = "price exceeds cap"

	// Claim errors
	ErrMsgClaimSetNotFound    = "claim set not found"
	ErrMsgAlreadyClaimed      = "slot already claimed"
	ErrMsgExpired             = "claim set expired"
	ErrMsgAlreadyParticipated = "user already claimed in this set"

	// Selection errors
	ErrMsgNoCandidates = "no candidates to select from"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Storage errors
	ErrMsgStorageUnavailable = "storage unavailable"

	// Compensation errors
	ErrMsgCompensationFailed = "compensation failed, manual reconciliation required"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound   = errors.New(ErrMsgAccountNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Item / inventory errors
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)

	// Validation errors
	ErrValidation = errors.New(ErrMsgValidation)

	// Market errors
	ErrListingNotFound  = errors.New(ErrMsgListingNotFound)
	ErrSelfPurchase     = errors.New(ErrMsgSelfPurchase)
	ErrConflictOnCreate = errors.New(ErrMsgConflictOnCreate)
	ErrPriceOverCap     = errors.New(ErrMsgPriceOverCap)

	// Claim errors
	ErrClaimSetNotFound    = errors.New(ErrMsgClaimSetNotFound)
	ErrAlreadyClaimed      = errors.New(ErrMsgAlreadyClaimed)
	ErrExpired             = errors.New(ErrMsgExpired)
	ErrAlreadyParticipated = errors.New(ErrMsgAlreadyParticipated)

	// Selection errors
	ErrNoCandidates = errors.New(ErrMsgNoCandidates)

	// Cooldown errors
	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	// Storage errors
	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)

	// Compensation errors
	ErrCompensationFailed = errors.New(ErrMsgCompensationFailed)
)
