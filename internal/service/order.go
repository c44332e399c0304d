package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/repo"
)

type OrderService struct {
	orderRepo  repo.OrderRepository
	outletRepo repo.OutletRepository
	menu       *MenuService
	logger     *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	outletRepo repo.OutletRepository,
	menu *MenuService,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		outletRepo: outletRepo,
		menu:       menu,
		logger:     logger,
	}
}

type OrderLineInput struct {
	MenuItemID primitive.ObjectID
	Quantity   int
}

// Place prices the order from the outlet's effective menu. Client-supplied
// prices are never trusted; unavailable items reject the whole order.
func (s *OrderService) Place(ctx context.Context, outletID primitive.ObjectID, lines []OrderLineInput) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.NewValidationError("lines", "order must contain at least one item")
	}

	if _, err := s.outletRepo.GetByID(ctx, outletID); err != nil {
		return nil, err
	}

	menu, err := s.menu.EffectiveMenu(ctx, outletID)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*domain.EffectiveMenuItem, len(menu))
	for i := range menu {
		byID[menu[i].ID] = &menu[i]
	}

	order := &domain.Order{
		OutletID: outletID,
		Status:   domain.OrderPlaced,
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, domain.NewValidationError("quantity", "quantity must be at least 1")
		}

		item, ok := byID[line.MenuItemID]
		if !ok {
			return nil, domain.NewValidationError("menu_item_id", "item %s is not on the menu", line.MenuItemID.Hex())
		}
		if !item.IsAvailable {
			return nil, domain.NewValidationError("menu_item_id", "item %q is not available at this outlet", item.Name)
		}

		order.Lines = append(order.Lines, domain.OrderLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.Quantity,
		})
		order.TotalAmount += item.Price * float64(line.Quantity)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Infow("order placed",
		"order_id", order.ID.Hex(), "outlet_id", outletID.Hex(), "total", order.TotalAmount)

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *OrderService) ListByOutlet(ctx context.Context, outletID primitive.ObjectID, activeOnly bool) ([]domain.Order, error) {
	var statuses []domain.OrderStatus
	if activeOnly {
		statuses = domain.ActiveOrderStatuses
	}
	return s.orderRepo.ListByOutlet(ctx, outletID, statuses)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status %q", string(status))
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("order status updated", "order_id", orderID.Hex(), "status", status)

	return order, nil
}
