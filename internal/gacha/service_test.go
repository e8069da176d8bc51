package gacha

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/ledger"
)

type fakePool struct {
	items []domain.ItemDefinition
}

func (f *fakePool) GetItem(_ context.Context, itemCode string) (*domain.ItemDefinition, error) {
	for _, d := range f.items {
		if d.Code == itemCode {
			cp := d
			return &cp, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (f *fakePool) GetPullableItems(context.Context) ([]domain.ItemDefinition, error) {
	return f.items, nil
}

func (f *fakePool) PriceCap(*domain.ItemDefinition) int64 { return 20000 }

// recordLedger tracks mutations and can simulate failures at each step.
type recordLedger struct {
	debits     []domain.Balances
	credits    []domain.Balances
	grants     map[string]int
	consumed   map[string]int
	debitErr   error
	creditErr  error
	consumeErr error
	grantErr   error
	grantErrOn int // 1-based grant call at which grantErr fires; 0 = never
	grantCalls int
}

func newRecordLedger() *recordLedger {
	return &recordLedger{
		grants:   make(map[string]int),
		consumed: make(map[string]int),
	}
}

func (r *recordLedger) GetAccount(context.Context, string) (*domain.Account, error) {
	return &domain.Account{}, nil
}

func (r *recordLedger) Credit(_ context.Context, _ string, deltas domain.Balances) error {
	if r.creditErr != nil {
		return r.creditErr
	}
	r.credits = append(r.credits, deltas)
	return nil
}

func (r *recordLedger) Debit(_ context.Context, _ string, deltas domain.Balances) error {
	if r.debitErr != nil {
		return r.debitErr
	}
	r.debits = append(r.debits, deltas)
	return nil
}

func (r *recordLedger) GetInventory(context.Context, string) ([]domain.InventoryEntry, error) {
	return nil, nil
}

func (r *recordLedger) GrantItem(_ context.Context, _ string, itemCode string, qty int) error {
	r.grantCalls++
	if r.grantErrOn != 0 && r.grantCalls >= r.grantErrOn {
		return r.grantErr
	}
	r.grants[itemCode] += qty
	return nil
}

func (r *recordLedger) ConsumeItem(_ context.Context, _ string, itemCode string, qty int) error {
	if r.consumeErr != nil {
		return r.consumeErr
	}
	r.consumed[itemCode] += qty
	return nil
}

func (r *recordLedger) ClaimDaily(context.Context, string) (*ledger.DailyResult, error) {
	return nil, nil
}

type gateStub struct {
	gated bool
	armed []string
}

func (g *gateStub) CheckCooldown(context.Context, string, string) (bool, time.Duration, error) {
	return g.gated, 0, nil
}

func (g *gateStub) EnforceCooldown(_ context.Context, _, action string, _ []float64, fn func() error) error {
	if g.gated {
		return domain.ErrOnCooldown
	}
	if err := fn(); err != nil {
		return err
	}
	g.armed = append(g.armed, action)
	return nil
}

func (g *gateStub) StartCooldown(_ context.Context, _, action string, _ []float64) error {
	g.armed = append(g.armed, action)
	return nil
}

func (g *gateStub) ResetCooldown(context.Context, string, string) error { return nil }

func (g *gateStub) EffectiveDuration(string, []float64) time.Duration { return time.Minute }

func newTestGacha(pool []domain.ItemDefinition) (Service, *recordLedger, *gateStub) {
	led := newRecordLedger()
	gate := &gateStub{}
	svc := NewService(&fakePool{items: pool}, led, gate, NewTable(), Config{
		PullCostPatterns: 50,
		MultiPullSize:    10,
	})
	return svc, led, gate
}

func TestPull_ChargesDrawsGrants(t *testing.T) {
	svc, led, gate := newTestGacha(tierPool())

	result, err := svc.Pull(context.Background(), "user1")
	require.NoError(t, err)

	require.Len(t, led.debits, 1)
	assert.Equal(t, int64(50), led.debits[0].Get(domain.CurrencyPatterns))
	assert.Equal(t, 1, led.grants[result.Item.Code])
	assert.Equal(t, []string{domain.ActionPull}, gate.armed)
}

func TestPull_InsufficientFundsLeavesGateOpen(t *testing.T) {
	svc, led, gate := newTestGacha(tierPool())
	led.debitErr = domain.ErrInsufficientFunds

	_, err := svc.Pull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Empty(t, led.grants)
	assert.Empty(t, gate.armed, "failed pull must not arm the cooldown")
}

func TestPull_Gated(t *testing.T) {
	svc, led, gate := newTestGacha(tierPool())
	gate.gated = true

	_, err := svc.Pull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrOnCooldown)
	assert.Empty(t, led.debits, "gated pull must not charge")
}

func TestPull_EmptyPool(t *testing.T) {
	svc, led, _ := newTestGacha(nil)

	_, err := svc.Pull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
	assert.Empty(t, led.debits, "empty pool must not charge")
}

func TestMultiPull_BatchWithGuaranteedTopTier(t *testing.T) {
	svc, led, gate := newTestGacha(tierPool())

	result, err := svc.MultiPull(context.Background(), "user1")
	require.NoError(t, err)

	assert.Len(t, result.Items, 10)
	assert.Equal(t, int64(500), result.Cost.Get(domain.CurrencyPatterns))
	assert.Equal(t, 5, result.Items[len(result.Items)-1].Rarity,
		"last slot must come from the top tier")

	granted := 0
	for _, qty := range led.grants {
		granted += qty
	}
	assert.Equal(t, 10, granted)
	assert.Equal(t, []string{domain.ActionMultiPull}, gate.armed)
}

func TestPull_GrantFailureRefundsCost(t *testing.T) {
	svc, led, gate := newTestGacha(tierPool())
	led.grantErr = domain.ErrStorageUnavailable
	led.grantErrOn = 1

	_, err := svc.Pull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	require.Len(t, led.debits, 1)
	require.Len(t, led.credits, 1)
	assert.Equal(t, led.debits[0], led.credits[0], "refund must return the full charge")
	assert.Empty(t, gate.armed, "failed pull must not arm the cooldown")
}

func TestPull_UnweightedPoolRefundsCost(t *testing.T) {
	// Every candidate carries an unknown rarity, so the draw itself fails
	// after the charge landed. The user must come out money-neutral.
	pool := []domain.ItemDefinition{
		{Code: "oddity_a", Rarity: 98, Pullable: true},
		{Code: "oddity_b", Rarity: 99, Pullable: true},
	}
	svc, led, gate := newTestGacha(pool)

	_, err := svc.Pull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrNoCandidates)

	require.Len(t, led.debits, 1)
	require.Len(t, led.credits, 1)
	assert.Equal(t, led.debits[0], led.credits[0])
	assert.Empty(t, led.grants)
	assert.Empty(t, gate.armed)
}

func TestPull_RefundFailureSurfaces(t *testing.T) {
	svc, led, _ := newTestGacha(tierPool())
	led.grantErr = domain.ErrStorageUnavailable
	led.grantErrOn = 1
	led.creditErr = domain.ErrStorageUnavailable

	_, err := svc.Pull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrCompensationFailed)
}

func TestMultiPull_PartialGrantFailureUnwindsAndRefunds(t *testing.T) {
	svc, led, gate := newTestGacha(tierPool())
	led.grantErr = domain.ErrStorageUnavailable
	led.grantErrOn = 4

	_, err := svc.MultiPull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	granted := 0
	for _, qty := range led.grants {
		granted += qty
	}
	consumed := 0
	for _, qty := range led.consumed {
		consumed += qty
	}
	assert.Equal(t, granted, consumed, "every granted card must be taken back")
	assert.Equal(t, 3, consumed)

	require.Len(t, led.debits, 1)
	require.Len(t, led.credits, 1)
	assert.Equal(t, led.debits[0], led.credits[0], "refund must return the full batch charge")
	assert.Empty(t, gate.armed)
}

func TestMultiPull_UnwindFailureSurfaces(t *testing.T) {
	svc, led, _ := newTestGacha(tierPool())
	led.grantErr = domain.ErrStorageUnavailable
	led.grantErrOn = 4
	led.consumeErr = domain.ErrStorageUnavailable

	_, err := svc.MultiPull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrCompensationFailed)
	assert.Empty(t, led.credits, "a broken unwind must not also attempt the refund")
}

func TestMultiPull_Gated(t *testing.T) {
	svc, led, gate := newTestGacha(tierPool())
	gate.gated = true

	_, err := svc.MultiPull(context.Background(), "user1")
	assert.ErrorIs(t, err, domain.ErrOnCooldown)
	assert.Empty(t, led.debits)
}
