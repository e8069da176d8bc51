package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/gacha"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/metrics"
)

// PullRequest identifies the pulling user.
type PullRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandlePull performs a single weighted card draw
func HandlePull(svc gacha.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PullRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Pull"); err != nil {
			return
		}

		result, err := svc.Pull(r.Context(), req.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgPullFailed, "error", err)
			if errors.Is(err, domain.ErrOnCooldown) {
				metrics.CooldownsRejected.WithLabelValues(domain.ActionPull).Inc()
			}
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.PullsPerformed.WithLabelValues("single").Inc()
		metrics.CardsAwarded.WithLabelValues(strconv.Itoa(result.Item.Rarity)).Inc()
		metrics.PatternsSpent.Add(float64(result.Cost.Get(domain.CurrencyPatterns)))
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleMultiPull performs a batch draw with a guaranteed top-tier slot
func HandleMultiPull(svc gacha.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PullRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Multi-pull"); err != nil {
			return
		}

		result, err := svc.MultiPull(r.Context(), req.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgMultiPullFailed, "error", err)
			if errors.Is(err, domain.ErrOnCooldown) {
				metrics.CooldownsRejected.WithLabelValues(domain.ActionMultiPull).Inc()
			}
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.PullsPerformed.WithLabelValues("multi").Inc()
		for _, item := range result.Items {
			metrics.CardsAwarded.WithLabelValues(strconv.Itoa(item.Rarity)).Inc()
		}
		metrics.PatternsSpent.Add(float64(result.Cost.Get(domain.CurrencyPatterns)))
		respondJSON(w, http.StatusOK, result)
	}
}
