package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// OrderNotifier sends the order-placed emails. Both notifications are
// best effort: a delivery failure never rolls the checkout back.
type OrderNotifier interface {
	NotifyCustomer(ctx context.Context, order *ordering.Order, customer *identity.User, contact *identity.Contact) error
	NotifyAdmin(ctx context.Context, order *ordering.Order, customer *identity.User, contact *identity.Contact) error
}

// Service handles basket mutation, checkout and order listing
type Service struct {
	orderRepo   ordering.OrderRepository
	productRepo catalog.ProductRepository
	shopRepo    catalog.ShopRepository
	contactRepo identity.ContactRepository
	userRepo    identity.UserRepository
	notifier    OrderNotifier
	logger      *zap.Logger
}

// NewService creates a new ordering service
func NewService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	shopRepo catalog.ShopRepository,
	contactRepo identity.ContactRepository,
	userRepo identity.UserRepository,
	notifier OrderNotifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		contactRepo: contactRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetBasket returns the user's basket with items loaded. A user who
// never added anything gets an empty, unsaved basket rather than an
// error.
func (s *Service) GetBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return ordering.NewBasket(userID), nil
		}
		s.logger.Error("Failed to load basket", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to load basket")
	}
	return basket, nil
}

// AddItems puts the given offers into the user's basket, creating the
// basket on first use. An offer already in the basket gets its quantity
// overwritten, not accumulated. Unknown offers fail the whole request.
func (s *Service) AddItems(ctx context.Context, userID uuid.UUID, items []AddItemInput) (*ordering.Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "no items given")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "item quantity must be positive")
		}
		ids = append(ids, item.ProductInfoID)
	}

	offers, err := s.productRepo.FindOffersByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve offers", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update basket")
	}
	known := make(map[uuid.UUID]bool, len(offers))
	for _, offer := range offers {
		known[offer.ID] = true
	}
	for _, item := range items {
		if !known[item.ProductInfoID] {
			return nil, shared.NewDomainErrorf("PRODUCT_NOT_FOUND", "offer %s does not exist", item.ProductInfoID)
		}
	}

	basket, err := s.orderRepo.FindOrCreateBasket(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get basket", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update basket")
	}

	for _, item := range items {
		orderItem, err := ordering.NewOrderItem(basket.ID, item.ProductInfoID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if err := s.orderRepo.UpsertItem(ctx, orderItem); err != nil {
			s.logger.Error("Failed to upsert basket item", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update basket")
		}
	}

	basket, err = s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to reload basket", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update basket")
	}
	return basket, nil
}

// RemoveItems deletes the given item ids from the user's basket. Ids
// pointing into someone else's basket simply match nothing.
func (s *Service) RemoveItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", "no item ids given")
	}

	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return 0, nil
		}
		s.logger.Error("Failed to load basket", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "failed to update basket")
	}

	deleted, err := s.orderRepo.DeleteItems(ctx, basket.ID, ids)
	if err != nil {
		s.logger.Error("Failed to delete basket items", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "failed to update basket")
	}
	return deleted, nil
}

// Checkout places the basket order: verifies ownership and status,
// attaches the contact and transitions the order to new. The
// conditional update in the repository arbitrates concurrent checkouts
// of the same basket.
func (s *Service) Checkout(ctx context.Context, input CheckoutInput) (*ordering.Order, error) {
	contact, err := s.contactRepo.FindByIDForUser(ctx, input.ContactID, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("CONTACT_NOT_FOUND", "contact not found")
	}

	order, err := s.orderRepo.FindByIDForUser(ctx, input.OrderID, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "order not found")
	}
	if !order.IsBasket() {
		return nil, shared.NewDomainErrorf("INVALID_STATUS_TRANSITION",
			"order is already in status %s", order.Status)
	}
	if len(order.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_BASKET", "cannot place an empty basket")
	}

	placed, err := s.orderRepo.Place(ctx, order.ID, input.UserID, contact.ID)
	if err != nil {
		s.logger.Error("Failed to place order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to place order")
	}
	if !placed {
		// Another request won the race and placed the basket first.
		return nil, shared.NewDomainError("INVALID_STATUS_TRANSITION", "order is no longer a basket")
	}

	order, err = s.orderRepo.FindByIDForUser(ctx, input.OrderID, input.UserID)
	if err != nil {
		s.logger.Error("Failed to reload placed order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to place order")
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("total", order.Total().String()))

	s.notify(ctx, order, contact)
	return order, nil
}

// notify sends both order-placed emails, logging failures instead of
// propagating them.
func (s *Service) notify(ctx context.Context, order *ordering.Order, contact *identity.Contact) {
	customer, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		s.logger.Warn("Failed to load customer for notification", zap.Error(err))
		return
	}
	if err := s.notifier.NotifyCustomer(ctx, order, customer, contact); err != nil {
		s.logger.Warn("Failed to send customer notification",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
	if err := s.notifier.NotifyAdmin(ctx, order, customer, contact); err != nil {
		s.logger.Warn("Failed to send admin notification",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

// ListOrders returns the user's placed orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID) ([]*ordering.Order, error) {
	orders, err := s.orderRepo.FindPlacedForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to list orders")
	}
	return orders, nil
}

// GetOrder returns one of the user's placed orders with items loaded.
func (s *Service) GetOrder(ctx context.Context, id, userID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "order not found")
	}
	if !order.Status.IsPlaced() {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "order not found")
	}
	return order, nil
}

// PartnerOrders returns placed orders containing offers from the
// supplier's shop.
func (s *Service) PartnerOrders(ctx context.Context, userID uuid.UUID) ([]*ordering.Order, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("SHOP_NOT_FOUND", "no shop registered for this account")
	}

	orders, err := s.orderRepo.FindPlacedForShop(ctx, shop.ID)
	if err != nil {
		s.logger.Error("Failed to list shop orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to list orders")
	}
	return orders, nil
}

// AdvanceStatus moves a placed order along the fulfilment graph on
// behalf of the supplier whose shop is part of the order.
func (s *Service) AdvanceStatus(ctx context.Context, userID, orderID uuid.UUID, target ordering.OrderStatus) (*ordering.Order, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("SHOP_NOT_FOUND", "no shop registered for this account")
	}

	orders, err := s.orderRepo.FindPlacedForShop(ctx, shop.ID)
	if err != nil {
		s.logger.Error("Failed to list shop orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update order")
	}

	var order *ordering.Order
	for _, o := range orders {
		if o.ID == orderID {
			order = o
			break
		}
	}
	if order == nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "order not found")
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		s.logger.Error("Failed to update order status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update order")
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)))
	return order, nil
}
