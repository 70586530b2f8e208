package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Service serves the public catalog plus the supplier's shop state.
type Service struct {
	shopRepo     catalog.ShopRepository
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewService creates a new catalog service
func NewService(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// ListShops returns shops currently accepting orders.
func (s *Service) ListShops(ctx context.Context) ([]*catalog.Shop, error) {
	shops, err := s.shopRepo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("Failed to list shops", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to list shops")
	}
	return shops, nil
}

// ListCategories returns the global category tree.
func (s *Service) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to list categories")
	}
	return categories, nil
}

// SearchOffers returns sellable offers, optionally narrowed by shop
// and category. Shops that stopped accepting orders are excluded at
// the query level.
func (s *Service) SearchOffers(ctx context.Context, filter catalog.OfferFilter) ([]*catalog.ProductInfo, error) {
	offers, err := s.productRepo.SearchOffers(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to search offers", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to search products")
	}
	return offers, nil
}

// GetOffer returns a single offer with product, category and parameters.
func (s *Service) GetOffer(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	offer, err := s.productRepo.FindOfferByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return offer, nil
}

// GetShopState returns the supplier's own shop. A supplier who has not
// imported a price list yet has no shop.
func (s *Service) GetShopState(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("SHOP_NOT_FOUND", "no shop registered for this account")
	}
	return shop, nil
}

// SetShopState flips the supplier's accepting-orders flag.
func (s *Service) SetShopState(ctx context.Context, userID uuid.UUID, state bool) (*catalog.Shop, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("SHOP_NOT_FOUND", "no shop registered for this account")
	}

	shop.State = state
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		s.logger.Error("Failed to update shop state", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to update shop state")
	}

	s.logger.Info("Shop state changed",
		zap.String("shop_id", shop.ID.String()),
		zap.Bool("state", state))
	return shop, nil
}
