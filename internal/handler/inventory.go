package handler

import (
	"net/http"

	"github.com/osmunda/cardbot/internal/ledger"
	"github.com/osmunda/cardbot/internal/logger"
)

// HandleGetInventory returns all items a user holds
func HandleGetInventory(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		entries, err := svc.GetInventory(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetInventoryFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}

// ItemMutationRequest carries an inventory mutation for one user.
type ItemMutationRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	ItemCode string `json:"item_code" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// HandleGrantItem adds items to an inventory. Administrative endpoint.
func HandleGrantItem(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemMutationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant item"); err != nil {
			return
		}

		if err := svc.GrantItem(r.Context(), req.UserID, req.ItemCode, req.Quantity); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGrantItemFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "granted"})
	}
}

// HandleConsumeItem removes items from an inventory
func HandleConsumeItem(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemMutationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Consume item"); err != nil {
			return
		}

		if err := svc.ConsumeItem(r.Context(), req.UserID, req.ItemCode, req.Quantity); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgConsumeItemFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "consumed"})
	}
}
