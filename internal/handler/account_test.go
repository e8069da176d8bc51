package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/ledger"
)

// fakeLedger implements ledger.Service with canned responses.
type fakeLedger struct {
	account    *domain.Account
	accountErr error

	creditErr error
	debitErr  error

	inventory    []domain.InventoryEntry
	inventoryErr error

	grantErr   error
	consumeErr error

	daily    *ledger.DailyResult
	dailyErr error

	credited domain.Balances
	debited  domain.Balances
	granted  int
	consumed int
}

func (f *fakeLedger) GetAccount(_ context.Context, _ string) (*domain.Account, error) {
	return f.account, f.accountErr
}

func (f *fakeLedger) Credit(_ context.Context, _ string, deltas domain.Balances) error {
	if f.creditErr != nil {
		return f.creditErr
	}
	f.credited = deltas
	return nil
}

func (f *fakeLedger) Debit(_ context.Context, _ string, deltas domain.Balances) error {
	if f.debitErr != nil {
		return f.debitErr
	}
	f.debited = deltas
	return nil
}

func (f *fakeLedger) GetInventory(_ context.Context, _ string) ([]domain.InventoryEntry, error) {
	return f.inventory, f.inventoryErr
}

func (f *fakeLedger) GrantItem(_ context.Context, _, _ string, qty int) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.granted += qty
	return nil
}

func (f *fakeLedger) ConsumeItem(_ context.Context, _, _ string, qty int) error {
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.consumed += qty
	return nil
}

func (f *fakeLedger) ClaimDaily(_ context.Context, _ string) (*ledger.DailyResult, error) {
	return f.daily, f.dailyErr
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf []byte
	if s, ok := body.(string); ok {
		buf = []byte(s)
	} else {
		var err error
		buf, err = json.Marshal(body)
		assert.NoError(t, err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(buf))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleGetAccount(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		svc            *fakeLedger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing user_id",
			query:          "",
			svc:            &fakeLedger{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing user_id query parameter",
		},
		{
			name:           "Account not found",
			query:          "?user_id=u1",
			svc:            &fakeLedger{accountErr: domain.ErrAccountNotFound},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgAccountNotFoundError,
		},
		{
			name:           "Storage unavailable",
			query:          "?user_id=u1",
			svc:            &fakeLedger{accountErr: domain.ErrStorageUnavailable},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgUnavailableError,
		},
		{
			name:           "Success",
			query:          "?user_id=u1",
			svc:            &fakeLedger{account: &domain.Account{UserID: "u1", Patterns: 420}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"patterns":420`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/account"+tt.query, nil)
			rec := httptest.NewRecorder()

			HandleGetAccount(tt.svc)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleCredit(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakeLedger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "not json",
			svc:            &fakeLedger{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing user_id",
			reqBody:        BalanceMutationRequest{Amounts: map[string]int64{"patterns": 10}},
			svc:            &fakeLedger{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:           "Unknown currency",
			reqBody:        BalanceMutationRequest{UserID: "u1", Amounts: map[string]int64{"doubloons": 10}},
			svc:            &fakeLedger{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "doubloons",
		},
		{
			name:           "Success",
			reqBody:        BalanceMutationRequest{UserID: "u1", Amounts: map[string]int64{"patterns": 10, "sopop": 2}},
			svc:            &fakeLedger{},
			expectedStatus: http.StatusOK,
			expectedBody:   "credited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleCredit(tt.svc), "/account/credit", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleCreditPassesDeltas(t *testing.T) {
	svc := &fakeLedger{}
	rec := postJSON(t, HandleCredit(svc), "/account/credit",
		BalanceMutationRequest{UserID: "u1", Amounts: map[string]int64{"patterns": 25}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(25), svc.credited.Get(domain.CurrencyPatterns))
}

func TestHandleDebitInsufficientFunds(t *testing.T) {
	svc := &fakeLedger{debitErr: domain.ErrInsufficientFunds}
	rec := postJSON(t, HandleDebit(svc), "/account/debit",
		BalanceMutationRequest{UserID: "u1", Amounts: map[string]int64{"patterns": 9000}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgNotEnoughMoneyError)
}

func TestHandleClaimDaily(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakeLedger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "On cooldown",
			reqBody:        DailyClaimRequest{UserID: "u1"},
			svc:            &fakeLedger{dailyErr: domain.ErrOnCooldown},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   ErrMsgOnCooldownError,
		},
		{
			name:    "Success",
			reqBody: DailyClaimRequest{UserID: "u1"},
			svc: &fakeLedger{daily: &ledger.DailyResult{
				Streak:  3,
				Awarded: domain.Balances{domain.CurrencyPatterns: 120},
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"streak":3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleClaimDaily(tt.svc), "/account/daily", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
