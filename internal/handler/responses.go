package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osmunda/cardbot/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
	ErrMsgReconciliationError = "Something went wrong settling the trade. Support has been notified."

	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgNotEnoughMoneyError  = "Not enough currency"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgNotEnoughItemsError  = "Not enough items"

	ErrMsgListingNotFoundError = "Listing not found"
	ErrMsgSelfPurchaseError    = "You cannot buy your own listing"
	ErrMsgPriceOverCapError    = "Price is above the cap for that item"

	ErrMsgDropNotFoundError     = "Drop not found"
	ErrMsgSlotTakenError        = "Too slow, that one is already claimed"
	ErrMsgDropExpiredError      = "That drop has expired"
	ErrMsgAlreadyGotOneError    = "You already claimed from this drop"
	ErrMsgNothingToPullError    = "Nothing to pull right now"
	ErrMsgOnCooldownError       = "Action is on cooldown. Try again later"
)

// mapServiceErrorToUserMessage maps domain errors to user-facing HTTP
// responses.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrSelfPurchase):
		return http.StatusBadRequest, ErrMsgSelfPurchaseError
	case errors.Is(err, domain.ErrPriceOverCap):
		return http.StatusBadRequest, ErrMsgPriceOverCapError
	case errors.Is(err, domain.ErrClaimSetNotFound):
		return http.StatusNotFound, ErrMsgDropNotFoundError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgSlotTakenError
	case errors.Is(err, domain.ErrExpired):
		return http.StatusGone, ErrMsgDropExpiredError
	case errors.Is(err, domain.ErrAlreadyParticipated):
		return http.StatusConflict, ErrMsgAlreadyGotOneError
	case errors.Is(err, domain.ErrNoCandidates):
		return http.StatusConflict, ErrMsgNothingToPullError
	case errors.Is(err, domain.ErrOnCooldown):
		return http.StatusTooManyRequests, ErrMsgOnCooldownError
	case errors.Is(err, domain.ErrCompensationFailed):
		return http.StatusInternalServerError, ErrMsgReconciliationError
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
