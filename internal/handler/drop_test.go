package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/osmunda/cardbot/internal/domain"
)

// fakeDrops implements drop.Service with canned responses.
type fakeDrops struct {
	set      *domain.ClaimSet
	spawnErr error
	getErr   error

	slot     *domain.ClaimSlot
	claimErr error
}

func (f *fakeDrops) Spawn(_ context.Context, _ []string, _ bool, _ time.Duration) (*domain.ClaimSet, error) {
	return f.set, f.spawnErr
}

func (f *fakeDrops) Get(_ context.Context, _ uuid.UUID) (*domain.ClaimSet, error) {
	return f.set, f.getErr
}

func (f *fakeDrops) Claim(_ context.Context, _ uuid.UUID, _ int, _ string) (*domain.ClaimSlot, error) {
	return f.slot, f.claimErr
}

func (f *fakeDrops) CloseExpired(_ context.Context) (int, error) {
	return 0, nil
}

// dropRequest builds a request with the {dropID} route parameter populated.
func dropRequest(method, dropID string, body []byte) *http.Request {
	req := httptest.NewRequest(method, "/drops/"+dropID, bytes.NewBuffer(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("dropID", dropID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleSpawnDrop(t *testing.T) {
	setID := uuid.New()
	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakeDrops
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "not json",
			svc:            &fakeDrops{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Empty item codes",
			reqBody:        SpawnDropRequest{ItemCodes: []string{}},
			svc:            &fakeDrops{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be at least 1",
		},
		{
			name:           "Unknown item",
			reqBody:        SpawnDropRequest{ItemCodes: []string{"ghost"}},
			svc:            &fakeDrops{spawnErr: domain.ErrItemNotFound},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgItemNotFoundError,
		},
		{
			name:    "Success",
			reqBody: SpawnDropRequest{ItemCodes: []string{"card_alpha"}, TTLSeconds: 60},
			svc: &fakeDrops{set: &domain.ClaimSet{
				ID:    setID,
				Slots: []domain.ClaimSlot{{SetID: setID, ItemCode: "card_alpha"}},
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   setID.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleSpawnDrop(tt.svc), "/drops", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetDrop(t *testing.T) {
	setID := uuid.New()

	t.Run("Invalid drop id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleGetDrop(&fakeDrops{})(rec, dropRequest("GET", "not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidDropID)
	})

	t.Run("Not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc := &fakeDrops{getErr: domain.ErrClaimSetNotFound}
		HandleGetDrop(svc)(rec, dropRequest("GET", setID.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgDropNotFoundError)
	})

	t.Run("Success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc := &fakeDrops{set: &domain.ClaimSet{ID: setID}}
		HandleGetDrop(svc)(rec, dropRequest("GET", setID.String(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), setID.String())
	})
}

func TestHandleClaimDrop(t *testing.T) {
	setID := uuid.New()
	claimant := "u1"
	tests := []struct {
		name           string
		svc            *fakeDrops
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Slot taken",
			svc:            &fakeDrops{claimErr: domain.ErrAlreadyClaimed},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgSlotTakenError,
		},
		{
			name:           "Expired",
			svc:            &fakeDrops{claimErr: domain.ErrExpired},
			expectedStatus: http.StatusGone,
			expectedBody:   ErrMsgDropExpiredError,
		},
		{
			name:           "Already participated",
			svc:            &fakeDrops{claimErr: domain.ErrAlreadyParticipated},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAlreadyGotOneError,
		},
		{
			name: "Success",
			svc: &fakeDrops{slot: &domain.ClaimSlot{
				SetID:      setID,
				SlotIndex:  0,
				ItemCode:   "card_alpha",
				ClaimantID: &claimant,
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"item_code":"card_alpha"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(ClaimDropRequest{UserID: "u1", SlotIndex: 0})
			assert.NoError(t, err)

			rec := httptest.NewRecorder()
			HandleClaimDrop(tt.svc)(rec, dropRequest("POST", setID.String(), body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
