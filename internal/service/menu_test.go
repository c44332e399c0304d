package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
)

func floatPtr(v float64) *float64 { return &v }

func TestMergeMenu(t *testing.T) {
	itemA := domain.MenuItem{ID: primitive.NewObjectID(), Name: "Masala Dosa", BasePrice: 120}
	itemB := domain.MenuItem{ID: primitive.NewObjectID(), Name: "Filter Coffee", BasePrice: 40}
	itemC := domain.MenuItem{ID: primitive.NewObjectID(), Name: "Idli", BasePrice: 60}
	outletID := primitive.NewObjectID()

	t.Run("no overrides yields base price and available", func(t *testing.T) {
		merged := MergeMenu([]domain.MenuItem{itemA, itemB}, nil)

		require.Len(t, merged, 2)
		for _, entry := range merged {
			assert.Equal(t, entry.BasePrice, entry.Price)
			assert.Equal(t, entry.BasePrice, entry.OriginalPrice)
			assert.True(t, entry.IsAvailable)
		}
	})

	t.Run("custom price wins, original price preserved", func(t *testing.T) {
		overrides := []domain.OutletItemOverride{
			{OutletID: outletID, MenuItemID: itemA.ID, CustomPrice: floatPtr(99), IsAvailable: true},
		}

		merged := MergeMenu([]domain.MenuItem{itemA, itemB}, overrides)

		byName := map[string]domain.EffectiveMenuItem{}
		for _, entry := range merged {
			byName[entry.Name] = entry
		}

		assert.Equal(t, 99.0, byName["Masala Dosa"].Price)
		assert.Equal(t, 120.0, byName["Masala Dosa"].OriginalPrice)
		assert.Equal(t, 40.0, byName["Filter Coffee"].Price)
	})

	t.Run("nil custom price falls back to base price", func(t *testing.T) {
		overrides := []domain.OutletItemOverride{
			{OutletID: outletID, MenuItemID: itemA.ID, CustomPrice: nil, IsAvailable: false},
		}

		merged := MergeMenu([]domain.MenuItem{itemA}, overrides)

		require.Len(t, merged, 1)
		assert.Equal(t, 120.0, merged[0].Price)
		assert.False(t, merged[0].IsAvailable)
	})

	t.Run("unavailable item keeps its effective price", func(t *testing.T) {
		overrides := []domain.OutletItemOverride{
			{OutletID: outletID, MenuItemID: itemB.ID, CustomPrice: floatPtr(35), IsAvailable: false},
		}

		merged := MergeMenu([]domain.MenuItem{itemB}, overrides)

		require.Len(t, merged, 1)
		assert.False(t, merged[0].IsAvailable)
		assert.Equal(t, 35.0, merged[0].Price)
	})

	t.Run("orphan overrides are ignored", func(t *testing.T) {
		overrides := []domain.OutletItemOverride{
			{OutletID: outletID, MenuItemID: primitive.NewObjectID(), CustomPrice: floatPtr(10), IsAvailable: true},
		}

		merged := MergeMenu([]domain.MenuItem{itemC}, overrides)

		require.Len(t, merged, 1)
		assert.Equal(t, itemC.ID, merged[0].ID)
		assert.Equal(t, 60.0, merged[0].Price)
	})

	t.Run("mixed outlet state", func(t *testing.T) {
		overrides := []domain.OutletItemOverride{
			{OutletID: outletID, MenuItemID: itemA.ID, CustomPrice: floatPtr(110), IsAvailable: true},
			{OutletID: outletID, MenuItemID: itemB.ID, IsAvailable: false},
		}

		merged := MergeMenu([]domain.MenuItem{itemA, itemB, itemC}, overrides)
		require.Len(t, merged, 3)

		byName := map[string]domain.EffectiveMenuItem{}
		for _, entry := range merged {
			byName[entry.Name] = entry
		}

		assert.Equal(t, 110.0, byName["Masala Dosa"].Price)
		assert.True(t, byName["Masala Dosa"].IsAvailable)
		assert.False(t, byName["Filter Coffee"].IsAvailable)
		assert.Equal(t, 60.0, byName["Idli"].Price)
		assert.True(t, byName["Idli"].IsAvailable)
	})
}

func TestMenuService_SetAvailability(t *testing.T) {
	logger := zap.NewNop().Sugar()
	item := &domain.MenuItem{ID: primitive.NewObjectID(), Name: "Vada", BasePrice: 50}
	outletID := primitive.NewObjectID()
	actorID := primitive.NewObjectID()

	t.Run("creates override without touching price", func(t *testing.T) {
		overrideRepo := newFakeOverrideRepo()
		broker := newFakeBroker()
		svc := NewMenuService(newFakeCatalogRepo(item), overrideRepo, broker, logger)

		override, err := svc.SetAvailability(context.Background(), outletID, item.ID, actorID, false)
		require.NoError(t, err)

		assert.False(t, override.IsAvailable)
		assert.Nil(t, override.CustomPrice)
		assert.Len(t, broker.published[queue.QueueMenuAudit], 1)
	})

	t.Run("does not clobber an approved custom price", func(t *testing.T) {
		overrideRepo := newFakeOverrideRepo()
		_, err := overrideRepo.UpsertPrice(context.Background(), outletID, item.ID, 45)
		require.NoError(t, err)

		svc := NewMenuService(newFakeCatalogRepo(item), overrideRepo, newFakeBroker(), logger)

		override, err := svc.SetAvailability(context.Background(), outletID, item.ID, actorID, false)
		require.NoError(t, err)

		assert.False(t, override.IsAvailable)
		require.NotNil(t, override.CustomPrice)
		assert.Equal(t, 45.0, *override.CustomPrice)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := NewMenuService(newFakeCatalogRepo(), newFakeOverrideRepo(), newFakeBroker(), logger)

		_, err := svc.SetAvailability(context.Background(), outletID, primitive.NewObjectID(), actorID, true)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("broker failure does not fail the toggle", func(t *testing.T) {
		broker := newFakeBroker()
		broker.publishErr = assert.AnError
		svc := NewMenuService(newFakeCatalogRepo(item), newFakeOverrideRepo(), broker, logger)

		override, err := svc.SetAvailability(context.Background(), outletID, item.ID, actorID, true)
		require.NoError(t, err)
		assert.True(t, override.IsAvailable)
	})
}

func TestMenuService_EffectiveMenu(t *testing.T) {
	logger := zap.NewNop().Sugar()
	item := &domain.MenuItem{ID: primitive.NewObjectID(), Name: "Thali", BasePrice: 250}
	outletA := primitive.NewObjectID()
	outletB := primitive.NewObjectID()

	overrideRepo := newFakeOverrideRepo()
	_, err := overrideRepo.UpsertPrice(context.Background(), outletA, item.ID, 230)
	require.NoError(t, err)

	svc := NewMenuService(newFakeCatalogRepo(item), overrideRepo, newFakeBroker(), logger)

	menuA, err := svc.EffectiveMenu(context.Background(), outletA)
	require.NoError(t, err)
	require.Len(t, menuA, 1)
	assert.Equal(t, 230.0, menuA[0].Price)

	// outlet B has no overrides and sees the base price
	menuB, err := svc.EffectiveMenu(context.Background(), outletB)
	require.NoError(t, err)
	require.Len(t, menuB, 1)
	assert.Equal(t, 250.0, menuB[0].Price)
}
