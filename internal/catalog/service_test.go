package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osmunda/cardbot/internal/domain"
)

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) GetItemByCode(ctx context.Context, itemCode string) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *mockItemRepo) GetPullableItems(ctx context.Context) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}

func TestGetItem_CachesLookups(t *testing.T) {
	repo := new(mockItemRepo)
	svc := NewService(repo)
	ctx := context.Background()

	def := &domain.ItemDefinition{Code: "card_alpha", Name: "Alpha", Rarity: domain.RarityRare, Category: "standard"}
	repo.On("GetItemByCode", mock.Anything, "card_alpha").Return(def, nil).Once()

	got, err := svc.GetItem(ctx, "card_alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)

	// Second lookup is served from cache; the mock allows only one call.
	got, err = svc.GetItem(ctx, "card_alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)

	repo.AssertExpectations(t)
}

func TestGetItem_NotFound(t *testing.T) {
	repo := new(mockItemRepo)
	svc := NewService(repo)

	repo.On("GetItemByCode", mock.Anything, "missing").Return(nil, domain.ErrItemNotFound)

	_, err := svc.GetItem(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestPriceCap(t *testing.T) {
	svc := NewService(new(mockItemRepo))

	tests := []struct {
		name string
		def  domain.ItemDefinition
		want int64
	}{
		{"common", domain.ItemDefinition{Rarity: domain.RarityCommon, Category: "standard"}, 100},
		{"uncommon", domain.ItemDefinition{Rarity: domain.RarityUncommon, Category: "standard"}, 300},
		{"rare", domain.ItemDefinition{Rarity: domain.RarityRare, Category: "standard"}, 1000},
		{"epic", domain.ItemDefinition{Rarity: domain.RarityEpic, Category: "standard"}, 5000},
		{"legendary", domain.ItemDefinition{Rarity: domain.RarityLegendary, Category: "standard"}, 20000},
		{"category override beats rarity", domain.ItemDefinition{Rarity: domain.RarityCommon, Category: "event"}, 50000},
		{"unknown rarity falls back", domain.ItemDefinition{Rarity: 9, Category: "standard"}, 20000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PriceCap(&tt.def))
		})
	}
}

func TestGetPullableItems(t *testing.T) {
	repo := new(mockItemRepo)
	svc := NewService(repo)

	items := []domain.ItemDefinition{
		{Code: "card_a", Rarity: domain.RarityCommon, Pullable: true},
		{Code: "card_b", Rarity: domain.RarityLegendary, Pullable: true},
	}
	repo.On("GetPullableItems", mock.Anything).Return(items, nil)

	got, err := svc.GetPullableItems(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
