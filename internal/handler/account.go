package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/ledger"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/metrics"
)

// parseBalances converts a wire-level amounts map into domain balances,
// rejecting unknown currencies.
func parseBalances(amounts map[string]int64) (domain.Balances, error) {
	deltas := make(domain.Balances, len(amounts))
	for name, v := range amounts {
		c := domain.Currency(name)
		known := false
		for _, k := range domain.Currencies {
			if c == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: unknown currency %q", domain.ErrValidation, name)
		}
		deltas[c] = v
	}
	return deltas, nil
}

// HandleGetAccount returns a user's currency balances
func HandleGetAccount(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		acct, err := svc.GetAccount(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetAccountFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, acct)
	}
}

// BalanceMutationRequest carries a currency mutation for one account.
type BalanceMutationRequest struct {
	UserID  string           `json:"user_id" validate:"required"`
	Amounts map[string]int64 `json:"amounts" validate:"required,min=1"`
}

// HandleCredit adds currency to an account. Administrative endpoint.
func HandleCredit(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BalanceMutationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Credit"); err != nil {
			return
		}

		deltas, err := parseBalances(req.Amounts)
		if err == nil {
			err = svc.Credit(r.Context(), req.UserID, deltas)
		}
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgCreditFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.PatternsEarned.Add(float64(deltas.Get(domain.CurrencyPatterns)))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "credited"})
	}
}

// HandleDebit removes currency from an account. Administrative endpoint.
func HandleDebit(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BalanceMutationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Debit"); err != nil {
			return
		}

		deltas, err := parseBalances(req.Amounts)
		if err == nil {
			err = svc.Debit(r.Context(), req.UserID, deltas)
		}
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgDebitFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.PatternsSpent.Add(float64(deltas.Get(domain.CurrencyPatterns)))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "debited"})
	}
}

// DailyClaimRequest identifies the claiming user.
type DailyClaimRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleClaimDaily grants the daily reward
func HandleClaimDaily(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DailyClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim daily"); err != nil {
			return
		}

		result, err := svc.ClaimDaily(r.Context(), req.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgClaimDailyFailed, "error", err)
			if errors.Is(err, domain.ErrOnCooldown) {
				metrics.CooldownsRejected.WithLabelValues(domain.ActionDaily).Inc()
			}
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.DailiesClaimed.Inc()
		metrics.PatternsEarned.Add(float64(result.Awarded.Get(domain.CurrencyPatterns)))
		respondJSON(w, http.StatusOK, result)
	}
}
