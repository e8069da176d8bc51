package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osmunda/cardbot/internal/drop"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/metrics"
)

// SpawnDropRequest describes a drop to create. Administrative endpoint
// payload; one slot is created per item code.
type SpawnDropRequest struct {
	ItemCodes  []string `json:"item_codes" validate:"required,min=1,dive,required"`
	OnePerUser bool     `json:"one_per_user"`
	TTLSeconds int      `json:"ttl_seconds" validate:"gte=0"`
}

// HandleSpawnDrop creates a shared drop. Administrative endpoint.
func HandleSpawnDrop(svc drop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SpawnDropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Spawn drop"); err != nil {
			return
		}

		set, err := svc.Spawn(r.Context(), req.ItemCodes, req.OnePerUser, time.Duration(req.TTLSeconds)*time.Second)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgSpawnDropFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.DropsSpawned.Inc()
		respondJSON(w, http.StatusOK, set)
	}
}

// dropIDFromRequest parses the {dropID} route parameter. When ok is false
// the error response has already been written.
func dropIDFromRequest(r *http.Request, w http.ResponseWriter) (uuid.UUID, bool) {
	setID, err := uuid.Parse(chi.URLParam(r, "dropID"))
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgInvalidDropID, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidDropID)
		return uuid.Nil, false
	}
	return setID, true
}

// HandleGetDrop returns a drop with its slot states
func HandleGetDrop(svc drop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setID, ok := dropIDFromRequest(r, w)
		if !ok {
			return
		}

		set, err := svc.Get(r.Context(), setID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetDropFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, set)
	}
}

// ClaimDropRequest identifies the claim attempt.
type ClaimDropRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	SlotIndex int    `json:"slot_index" validate:"gte=0"`
}

// HandleClaimDrop awards a slot to the first caller
func HandleClaimDrop(svc drop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setID, ok := dropIDFromRequest(r, w)
		if !ok {
			return
		}

		var req ClaimDropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim drop"); err != nil {
			return
		}

		slot, err := svc.Claim(r.Context(), setID, req.SlotIndex, req.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Warn(ErrMsgClaimDropFailed, "drop_id", setID, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			if status == http.StatusConflict || status == http.StatusGone {
				metrics.DropClaimsRejected.WithLabelValues(rejectionReason(status)).Inc()
			}
			respondError(w, status, msg)
			return
		}

		metrics.DropSlotsClaimed.Inc()
		respondJSON(w, http.StatusOK, slot)
	}
}

func rejectionReason(status int) string {
	if status == http.StatusGone {
		return "expired"
	}
	return "taken"
}
