package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

type orderFixture struct {
	svc      *OrderService
	outletID primitive.ObjectID
	dosa     *domain.MenuItem
	coffee   *domain.MenuItem
	override *fakeOverrideRepo
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	logger := zap.NewNop().Sugar()
	dosa := &domain.MenuItem{ID: primitive.NewObjectID(), Name: "Masala Dosa", BasePrice: 120}
	coffee := &domain.MenuItem{ID: primitive.NewObjectID(), Name: "Filter Coffee", BasePrice: 40}
	outlet := &domain.Outlet{ID: primitive.NewObjectID(), Name: "Vijay Nagar", Type: domain.OutletDineIn}

	overrideRepo := newFakeOverrideRepo()
	menu := NewMenuService(newFakeCatalogRepo(dosa, coffee), overrideRepo, newFakeBroker(), logger)
	svc := NewOrderService(newFakeOrderRepo(), newFakeOutletRepo(outlet), menu, logger)

	return &orderFixture{
		svc:      svc,
		outletID: outlet.ID,
		dosa:     dosa,
		coffee:   coffee,
		override: overrideRepo,
	}
}

func TestOrderService_Place(t *testing.T) {
	t.Run("prices come from the effective menu", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.override.UpsertPrice(context.Background(), f.outletID, f.dosa.ID, 110)
		require.NoError(t, err)

		order, err := f.svc.Place(context.Background(), f.outletID, []OrderLineInput{
			{MenuItemID: f.dosa.ID, Quantity: 2},
			{MenuItemID: f.coffee.ID, Quantity: 1},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.OrderPlaced, order.Status)
		require.Len(t, order.Lines, 2)
		assert.Equal(t, 110.0, order.Lines[0].UnitPrice)
		assert.Equal(t, "Masala Dosa", order.Lines[0].Name)
		assert.Equal(t, 2*110.0+40.0, order.TotalAmount)
	})

	t.Run("unavailable item rejects the order", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.override.UpsertAvailability(context.Background(), f.outletID, f.dosa.ID, false)
		require.NoError(t, err)

		_, err = f.svc.Place(context.Background(), f.outletID, []OrderLineInput{
			{MenuItemID: f.dosa.ID, Quantity: 1},
		})
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("unknown item rejects the order", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.Place(context.Background(), f.outletID, []OrderLineInput{
			{MenuItemID: primitive.NewObjectID(), Quantity: 1},
		})
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("quantity below one rejects the order", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.Place(context.Background(), f.outletID, []OrderLineInput{
			{MenuItemID: f.dosa.ID, Quantity: 0},
		})
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("empty order", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.Place(context.Background(), f.outletID, nil)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("unknown outlet", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.Place(context.Background(), primitive.NewObjectID(), []OrderLineInput{
			{MenuItemID: f.dosa.ID, Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrderService_ListByOutlet(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.Place(context.Background(), f.outletID, []OrderLineInput{
		{MenuItemID: f.coffee.ID, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, domain.OrderCompleted)
	require.NoError(t, err)

	second, err := f.svc.Place(context.Background(), f.outletID, []OrderLineInput{
		{MenuItemID: f.dosa.ID, Quantity: 1},
	})
	require.NoError(t, err)

	all, err := f.svc.ListByOutlet(context.Background(), f.outletID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.svc.ListByOutlet(context.Background(), f.outletID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.Place(context.Background(), f.outletID, []OrderLineInput{
		{MenuItemID: f.dosa.ID, Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), order.ID, domain.OrderCooking)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCooking, updated.Status)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "burnt")
	assert.True(t, domain.IsValidationError(err))
}
