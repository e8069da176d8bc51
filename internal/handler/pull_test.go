package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/gacha"
)

// fakeGacha implements gacha.Service with canned responses.
type fakeGacha struct {
	single    *gacha.PullResult
	singleErr error

	multi    *gacha.MultiPullResult
	multiErr error
}

func (f *fakeGacha) Pull(_ context.Context, _ string) (*gacha.PullResult, error) {
	return f.single, f.singleErr
}

func (f *fakeGacha) MultiPull(_ context.Context, _ string) (*gacha.MultiPullResult, error) {
	return f.multi, f.multiErr
}

func TestHandlePull(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakeGacha
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing user_id",
			reqBody:        PullRequest{},
			svc:            &fakeGacha{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:           "On cooldown",
			reqBody:        PullRequest{UserID: "u1"},
			svc:            &fakeGacha{singleErr: domain.ErrOnCooldown},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   ErrMsgOnCooldownError,
		},
		{
			name:           "Broke",
			reqBody:        PullRequest{UserID: "u1"},
			svc:            &fakeGacha{singleErr: domain.ErrInsufficientFunds},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughMoneyError,
		},
		{
			name:           "Empty pool",
			reqBody:        PullRequest{UserID: "u1"},
			svc:            &fakeGacha{singleErr: domain.ErrNoCandidates},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgNothingToPullError,
		},
		{
			name:    "Success",
			reqBody: PullRequest{UserID: "u1"},
			svc: &fakeGacha{single: &gacha.PullResult{
				Item: domain.ItemDefinition{Code: "card_alpha", Rarity: 3},
				Cost: domain.Balances{domain.CurrencyPatterns: 50},
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"code":"card_alpha"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandlePull(tt.svc), "/pull", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleMultiPull(t *testing.T) {
	svc := &fakeGacha{multi: &gacha.MultiPullResult{
		Items: []domain.ItemDefinition{
			{Code: "card_alpha", Rarity: 1},
			{Code: "card_omega", Rarity: 5},
		},
		Cost: domain.Balances{domain.CurrencyPatterns: 500},
	}}
	rec := postJSON(t, HandleMultiPull(svc), "/pull/multi", PullRequest{UserID: "u1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "card_omega")
}
