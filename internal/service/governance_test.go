package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
)

type governanceFixture struct {
	svc          *GovernanceService
	requestRepo  *fakePriceRequestRepo
	overrideRepo *fakeOverrideRepo
	broker       *fakeBroker
	item         *domain.MenuItem
	outletID     primitive.ObjectID
	managerID    primitive.ObjectID
	adminID      primitive.ObjectID
}

func newGovernanceFixture(t *testing.T) *governanceFixture {
	t.Helper()

	item := &domain.MenuItem{ID: primitive.NewObjectID(), Name: "Paneer Tikka", BasePrice: 200}
	manager := &domain.User{ID: primitive.NewObjectID(), Name: "Asha", Role: domain.RoleOutletManager}
	admin := &domain.User{ID: primitive.NewObjectID(), Name: "Ravi", Role: domain.RoleSuperAdmin}

	requestRepo := newFakePriceRequestRepo()
	overrideRepo := newFakeOverrideRepo()
	broker := newFakeBroker()

	svc := NewGovernanceService(
		requestRepo,
		overrideRepo,
		newFakeCatalogRepo(item),
		newFakeUserRepo(manager, admin),
		&fakeTx{overrides: overrideRepo},
		broker,
		zap.NewNop().Sugar(),
	)

	return &governanceFixture{
		svc:          svc,
		requestRepo:  requestRepo,
		overrideRepo: overrideRepo,
		broker:       broker,
		item:         item,
		outletID:     primitive.NewObjectID(),
		managerID:    manager.ID,
		adminID:      admin.ID,
	}
}

func TestGovernanceService_CreateRequest(t *testing.T) {
	t.Run("snapshots base price and manager name", func(t *testing.T) {
		f := newGovernanceFixture(t)

		request, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
		require.NoError(t, err)

		assert.Equal(t, domain.PriceRequestPending, request.Status)
		assert.Equal(t, 200.0, request.CurrentPrice)
		assert.Equal(t, 180.0, request.ProposedPrice)
		assert.Equal(t, "Paneer Tikka", request.MenuItemName)
		assert.Equal(t, "Asha", request.ManagerName)
	})

	t.Run("snapshots the effective price when an override exists", func(t *testing.T) {
		f := newGovernanceFixture(t)
		_, err := f.overrideRepo.UpsertPrice(context.Background(), f.outletID, f.item.ID, 150)
		require.NoError(t, err)

		request, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 140)
		require.NoError(t, err)

		assert.Equal(t, 150.0, request.CurrentPrice)
	})

	t.Run("negative price", func(t *testing.T) {
		f := newGovernanceFixture(t)

		_, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newGovernanceFixture(t)

		_, err := f.svc.CreateRequest(context.Background(), f.outletID, primitive.NewObjectID(), f.managerID, 100)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("second pending request for the same pair is rejected", func(t *testing.T) {
		f := newGovernanceFixture(t)

		_, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
		require.NoError(t, err)

		_, err = f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 170)
		assert.ErrorIs(t, err, domain.ErrDuplicatePending)
	})

	t.Run("same item at another outlet is independent", func(t *testing.T) {
		f := newGovernanceFixture(t)

		_, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
		require.NoError(t, err)

		_, err = f.svc.CreateRequest(context.Background(), primitive.NewObjectID(), f.item.ID, f.managerID, 170)
		assert.NoError(t, err)
	})

	t.Run("new request allowed after the previous one is decided", func(t *testing.T) {
		f := newGovernanceFixture(t)

		first, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
		require.NoError(t, err)

		_, err = f.svc.Reject(context.Background(), first.ID, f.adminID, "seasonal pricing only")
		require.NoError(t, err)

		_, err = f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 170)
		assert.NoError(t, err)
	})

	t.Run("concurrent submissions produce exactly one pending request", func(t *testing.T) {
		f := newGovernanceFixture(t)

		var mu sync.Mutex
		var created, duplicates int

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 175)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					created++
				} else if err == domain.ErrDuplicatePending {
					duplicates++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, 7, duplicates)

		pending, err := f.requestRepo.ListPending(context.Background())
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}

func TestGovernanceService_Approve(t *testing.T) {
	t.Run("applies the price and closes the request", func(t *testing.T) {
		f := newGovernanceFixture(t)

		request, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
		require.NoError(t, err)

		approved, err := f.svc.Approve(context.Background(), request.ID, f.adminID)
		require.NoError(t, err)

		assert.Equal(t, domain.PriceRequestApproved, approved.Status)
		require.NotNil(t, approved.DecidedBy)
		assert.Equal(t, f.adminID, *approved.DecidedBy)

		override, err := f.overrideRepo.Get(context.Background(), f.outletID, f.item.ID)
		require.NoError(t, err)
		require.NotNil(t, override.CustomPrice)
		assert.Equal(t, 180.0, *override.CustomPrice)
		assert.True(t, override.IsAvailable)

		assert.Len(t, f.broker.published[queue.QueueMenuAudit], 1)
	})

	t.Run("approval keeps an existing availability flag", func(t *testing.T) {
		f := newGovernanceFixture(t)
		_, err := f.overrideRepo.UpsertAvailability(context.Background(), f.outletID, f.item.ID, false)
		require.NoError(t, err)

		request, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 160)
		require.NoError(t, err)

		_, err = f.svc.Approve(context.Background(), request.ID, f.adminID)
		require.NoError(t, err)

		override, err := f.overrideRepo.Get(context.Background(), f.outletID, f.item.ID)
		require.NoError(t, err)
		assert.False(t, override.IsAvailable)
		require.NotNil(t, override.CustomPrice)
		assert.Equal(t, 160.0, *override.CustomPrice)
	})

	t.Run("second decision fails and changes nothing", func(t *testing.T) {
		f := newGovernanceFixture(t)

		request, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
		require.NoError(t, err)

		_, err = f.svc.Approve(context.Background(), request.ID, f.adminID)
		require.NoError(t, err)

		_, err = f.svc.Approve(context.Background(), request.ID, f.adminID)
		assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

		_, err = f.svc.Reject(context.Background(), request.ID, f.adminID, "changed my mind")
		assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

		override, err := f.overrideRepo.Get(context.Background(), f.outletID, f.item.ID)
		require.NoError(t, err)
		assert.Equal(t, 180.0, *override.CustomPrice)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newGovernanceFixture(t)

		_, err := f.svc.Approve(context.Background(), primitive.NewObjectID(), f.adminID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("a failed status write rolls back the price", func(t *testing.T) {
		f := newGovernanceFixture(t)

		request, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
		require.NoError(t, err)

		f.requestRepo.decideErr = assert.AnError

		_, err = f.svc.Approve(context.Background(), request.ID, f.adminID)
		require.Error(t, err)

		// neither side of the transaction may be visible
		_, err = f.overrideRepo.Get(context.Background(), f.outletID, f.item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		reloaded, err := f.requestRepo.GetByID(context.Background(), request.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PriceRequestPending, reloaded.Status)
	})
}

func TestGovernanceService_Reject(t *testing.T) {
	t.Run("records the reason and leaves pricing alone", func(t *testing.T) {
		f := newGovernanceFixture(t)

		request, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 300)
		require.NoError(t, err)

		rejected, err := f.svc.Reject(context.Background(), request.ID, f.adminID, "too steep for this outlet")
		require.NoError(t, err)

		assert.Equal(t, domain.PriceRequestRejected, rejected.Status)
		assert.Equal(t, "too steep for this outlet", rejected.RejectionReason)

		// no override record appears from a rejection
		_, err = f.overrideRepo.Get(context.Background(), f.outletID, f.item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.Len(t, f.broker.published[queue.QueueMenuAudit], 1)
	})
}

func TestGovernanceService_ListAll(t *testing.T) {
	f := newGovernanceFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), f.outletID, f.item.ID, f.managerID, 180)
	require.NoError(t, err)

	t.Run("filter by status", func(t *testing.T) {
		pending, err := f.svc.ListAll(context.Background(), domain.PriceRequestPending)
		require.NoError(t, err)
		assert.Len(t, pending, 1)

		approved, err := f.svc.ListAll(context.Background(), domain.PriceRequestApproved)
		require.NoError(t, err)
		assert.Empty(t, approved)
	})

	t.Run("empty status means all", func(t *testing.T) {
		all, err := f.svc.ListAll(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.svc.ListAll(context.Background(), "cancelled")
		assert.True(t, domain.IsValidationError(err))
	})
}
