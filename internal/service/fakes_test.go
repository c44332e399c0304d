package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/repo"
)

type fakeCatalogRepo struct {
	items      map[primitive.ObjectID]*domain.MenuItem
	lastFilter domain.MenuItemFilter
}

func newFakeCatalogRepo(items ...*domain.MenuItem) *fakeCatalogRepo {
	r := &fakeCatalogRepo{items: make(map[primitive.ObjectID]*domain.MenuItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeCatalogRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	r.items[item.ID] = item
	return nil
}

func (r *fakeCatalogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (r *fakeCatalogRepo) Update(ctx context.Context, id primitive.ObjectID, upd repo.CatalogUpdate) (*domain.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.BasePrice != nil {
		item.BasePrice = *upd.BasePrice
	}
	if upd.Image != nil {
		item.Image = *upd.Image
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Pieces != nil {
		item.Pieces = upd.Pieces
	}
	if upd.Tags != nil {
		item.Tags = upd.Tags
	}
	if upd.IsVeg != nil {
		item.IsVeg = *upd.IsVeg
	}
	item.UpdatedAt = time.Now()
	return item, nil
}

func (r *fakeCatalogRepo) List(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, int64, error) {
	r.lastFilter = filter
	out := make([]domain.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCatalogRepo) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	out := make([]domain.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

type overrideKey struct {
	outletID   primitive.ObjectID
	menuItemID primitive.ObjectID
}

type fakeOverrideRepo struct {
	overrides map[overrideKey]*domain.OutletItemOverride
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{overrides: make(map[overrideKey]*domain.OutletItemOverride)}
}

func (r *fakeOverrideRepo) Get(ctx context.Context, outletID, menuItemID primitive.ObjectID) (*domain.OutletItemOverride, error) {
	override, ok := r.overrides[overrideKey{outletID, menuItemID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return override, nil
}

func (r *fakeOverrideRepo) ListByOutlet(ctx context.Context, outletID primitive.ObjectID) ([]domain.OutletItemOverride, error) {
	out := []domain.OutletItemOverride{}
	for key, override := range r.overrides {
		if key.outletID == outletID {
			out = append(out, *override)
		}
	}
	return out, nil
}

func (r *fakeOverrideRepo) UpsertAvailability(ctx context.Context, outletID, menuItemID primitive.ObjectID, isAvailable bool) (*domain.OutletItemOverride, error) {
	key := overrideKey{outletID, menuItemID}
	override, ok := r.overrides[key]
	if !ok {
		override = &domain.OutletItemOverride{
			ID:         primitive.NewObjectID(),
			OutletID:   outletID,
			MenuItemID: menuItemID,
			CreatedAt:  time.Now(),
		}
		r.overrides[key] = override
	}
	override.IsAvailable = isAvailable
	override.UpdatedAt = time.Now()
	return override, nil
}

func (r *fakeOverrideRepo) UpsertPrice(ctx context.Context, outletID, menuItemID primitive.ObjectID, customPrice float64) (*domain.OutletItemOverride, error) {
	key := overrideKey{outletID, menuItemID}
	override, ok := r.overrides[key]
	if !ok {
		override = &domain.OutletItemOverride{
			ID:          primitive.NewObjectID(),
			OutletID:    outletID,
			MenuItemID:  menuItemID,
			IsAvailable: true,
			CreatedAt:   time.Now(),
		}
		r.overrides[key] = override
	}
	override.CustomPrice = &customPrice
	override.UpdatedAt = time.Now()
	return override, nil
}

func (r *fakeOverrideRepo) snapshot() map[overrideKey]domain.OutletItemOverride {
	snap := make(map[overrideKey]domain.OutletItemOverride, len(r.overrides))
	for key, override := range r.overrides {
		snap[key] = *override
	}
	return snap
}

func (r *fakeOverrideRepo) restore(snap map[overrideKey]domain.OutletItemOverride) {
	r.overrides = make(map[overrideKey]*domain.OutletItemOverride, len(snap))
	for key, override := range snap {
		copied := override
		r.overrides[key] = &copied
	}
}

// fakePriceRequestRepo is safe for concurrent use; Create rejects a second
// pending request per pair the way the partial unique index does.
type fakePriceRequestRepo struct {
	mu        sync.Mutex
	requests  map[primitive.ObjectID]*domain.PriceChangeRequest
	decideErr error
}

func newFakePriceRequestRepo() *fakePriceRequestRepo {
	return &fakePriceRequestRepo{requests: make(map[primitive.ObjectID]*domain.PriceChangeRequest)}
}

func (r *fakePriceRequestRepo) Create(ctx context.Context, req *domain.PriceChangeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.OutletID == req.OutletID &&
			existing.MenuItemID == req.MenuItemID &&
			existing.Status == domain.PriceRequestPending {
			return domain.ErrDuplicatePending
		}
	}
	req.ID = primitive.NewObjectID()
	req.Status = domain.PriceRequestPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	r.requests[req.ID] = req
	return nil
}

func (r *fakePriceRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PriceChangeRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakePriceRequestRepo) Decide(ctx context.Context, id primitive.ObjectID, status domain.PriceRequestStatus, decidedBy primitive.ObjectID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.decideErr != nil {
		return r.decideErr
	}
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	if req.Status != domain.PriceRequestPending {
		return domain.ErrAlreadyDecided
	}
	req.Status = status
	req.DecidedBy = &decidedBy
	req.RejectionReason = reason
	req.UpdatedAt = time.Now()
	return nil
}

func (r *fakePriceRequestRepo) ListPending(ctx context.Context) ([]domain.PriceChangeRequest, error) {
	return r.List(ctx, domain.PriceRequestPending)
}

func (r *fakePriceRequestRepo) List(ctx context.Context, status domain.PriceRequestStatus) ([]domain.PriceChangeRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.PriceChangeRequest{}
	for _, req := range r.requests {
		if status == "" || req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakePriceRequestRepo) HasPending(ctx context.Context, outletID, menuItemID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.OutletID == outletID && req.MenuItemID == menuItemID && req.Status == domain.PriceRequestPending {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, user := range users {
		r.users[user.ID] = user
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

type fakeOutletRepo struct {
	outlets map[primitive.ObjectID]*domain.Outlet
}

func newFakeOutletRepo(outlets ...*domain.Outlet) *fakeOutletRepo {
	r := &fakeOutletRepo{outlets: make(map[primitive.ObjectID]*domain.Outlet)}
	for _, outlet := range outlets {
		r.outlets[outlet.ID] = outlet
	}
	return r
}

func (r *fakeOutletRepo) Create(ctx context.Context, outlet *domain.Outlet) error {
	if outlet.ID.IsZero() {
		outlet.ID = primitive.NewObjectID()
	}
	r.outlets[outlet.ID] = outlet
	return nil
}

func (r *fakeOutletRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Outlet, error) {
	outlet, ok := r.outlets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return outlet, nil
}

func (r *fakeOutletRepo) List(ctx context.Context) ([]domain.Outlet, error) {
	out := make([]domain.Outlet, 0, len(r.outlets))
	for _, outlet := range r.outlets {
		out = append(out, *outlet)
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) ListByOutlet(ctx context.Context, outletID primitive.ObjectID, statuses []domain.OrderStatus) ([]domain.Order, error) {
	wanted := make(map[domain.OrderStatus]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}

	out := []domain.Order{}
	for _, order := range r.orders {
		if order.OutletID != outletID {
			continue
		}
		if len(statuses) > 0 && !wanted[order.Status] {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return order, nil
}

// fakeBroker records published messages per queue.
type fakeBroker struct {
	published  map[string][][]byte
	publishErr error
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][][]byte)}
}

func (b *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if b.publishErr != nil {
		return b.publishErr
	}
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error {
	return nil
}

// fakeTx emulates transactional semantics over the fake override repo: when
// fn fails, the override state is rolled back to the pre-transaction
// snapshot.
type fakeTx struct {
	overrides *fakeOverrideRepo
}

func (tx *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := tx.overrides.snapshot()
	if err := fn(ctx); err != nil {
		tx.overrides.restore(snap)
		return err
	}
	return nil
}
