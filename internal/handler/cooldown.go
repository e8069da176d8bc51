package handler

import (
	"net/http"

	"github.com/osmunda/cardbot/internal/cooldown"
	"github.com/osmunda/cardbot/internal/logger"
)

// CooldownStatusResponse reports a user's gate state for one action.
type CooldownStatusResponse struct {
	UserID           string  `json:"user_id"`
	Action           string  `json:"action"`
	OnCooldown       bool    `json:"on_cooldown"`
	RemainingSeconds float64 `json:"remaining_seconds"`
}

// StartCooldownRequest arms a cooldown without running the gated action.
type StartCooldownRequest struct {
	UserID     string    `json:"user_id" validate:"required"`
	Action     string    `json:"action" validate:"required"`
	Reductions []float64 `json:"reductions" validate:"omitempty,dive,gte=0,lte=100"`
}

// HandleStartCooldown arms a cooldown directly. Administrative endpoint.
func HandleStartCooldown(svc cooldown.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartCooldownRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start cooldown"); err != nil {
			return
		}

		if err := svc.StartCooldown(r.Context(), req.UserID, req.Action, req.Reductions); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgStartCooldownFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "cooldown started"})
	}
}

// HandleCheckCooldown returns whether an action is currently gated
func HandleCheckCooldown(svc cooldown.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		action, ok := GetQueryParam(r, w, "action")
		if !ok {
			return
		}

		gated, remaining, err := svc.CheckCooldown(r.Context(), userID, action)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgCheckCooldownFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, CooldownStatusResponse{
			UserID:           userID,
			Action:           action,
			OnCooldown:       gated,
			RemainingSeconds: remaining.Seconds(),
		})
	}
}
