package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/market"
	"github.com/osmunda/cardbot/internal/metrics"
)

// SellRequest publishes one copy of an item for sale.
type SellRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	ItemCode string `json:"item_code" validate:"required"`
	Price    int64  `json:"price" validate:"required,gt=0"`
}

// HandleSell escrows an item and creates a listing
func HandleSell(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell"); err != nil {
			return
		}

		listing, err := svc.Sell(r.Context(), req.UserID, req.ItemCode, req.Price)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgSellFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.ListingsCreated.WithLabelValues(listing.ItemCode).Inc()
		respondJSON(w, http.StatusOK, listing)
	}
}

// BuyRequest resolves a batch of buy codes for one buyer.
type BuyRequest struct {
	UserID   string   `json:"user_id" validate:"required"`
	BuyCodes []string `json:"buy_codes" validate:"required,min=1,dive,required"`
}

// HandleBuy settles each buy code independently
func HandleBuy(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy"); err != nil {
			return
		}

		result, err := svc.Buy(r.Context(), req.UserID, req.BuyCodes)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgBuyFailed, "error", err)
			if errors.Is(err, domain.ErrCompensationFailed) {
				metrics.CompensationsFired.WithLabelValues("buy").Inc()
			}
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		for _, l := range result.Purchased {
			metrics.ListingsBought.WithLabelValues(l.ItemCode).Inc()
			metrics.PatternsSpent.Add(float64(l.Price))
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// RemoveListingRequest takes down the seller's own listing.
type RemoveListingRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	BuyCode string `json:"buy_code" validate:"required"`
}

// HandleRemoveListing delists and returns the escrowed item
func HandleRemoveListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove listing"); err != nil {
			return
		}

		if err := svc.Remove(r.Context(), req.UserID, req.BuyCode); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgRemoveFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.ListingsRemoved.Inc()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "listing removed"})
	}
}

// AdminDeleteListingRequest takes down any listing by buy code.
type AdminDeleteListingRequest struct {
	BuyCode string `json:"buy_code" validate:"required"`
}

// HandleAdminDeleteListing delists any listing and returns the escrowed item
// to its seller. Administrative endpoint.
func HandleAdminDeleteListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminDeleteListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin delete listing"); err != nil {
			return
		}

		if err := svc.AdminDelete(r.Context(), req.BuyCode); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgAdminDeleteFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.ListingsRemoved.Inc()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "listing deleted"})
	}
}

// HandleListListings returns open listings, newest first
func HandleListListings(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", "0"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		listings, err := svc.ListListings(r.Context(), limit)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: listings})
	}
}

// HandleListMyListings returns all open listings for one seller
func HandleListMyListings(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		listings, err := svc.ListListingsBySeller(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: listings})
	}
}

// TransferRequest moves every holding of one account to another.
type TransferRequest struct {
	SrcUserID string `json:"src_user_id" validate:"required"`
	DstUserID string `json:"dst_user_id" validate:"required"`
}

// HandleTransfer migrates all holdings between accounts. Administrative
// endpoint.
func HandleTransfer(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
			return
		}

		if err := svc.Transfer(r.Context(), req.SrcUserID, req.DstUserID); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgTransferFailed, "error", err)
			if errors.Is(err, domain.ErrCompensationFailed) {
				metrics.CompensationsFired.WithLabelValues("transfer").Inc()
			}
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "holdings transferred"})
	}
}
