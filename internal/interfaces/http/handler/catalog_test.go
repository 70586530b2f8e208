package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindAllActive(ctx context.Context) ([]*catalog.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Shop), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SearchOffers(ctx context.Context, filter catalog.OfferFilter) ([]*catalog.ProductInfo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ProductInfo), args.Error(1)
}

func (m *MockProductRepository) FindOfferByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductInfo), args.Error(1)
}

func (m *MockProductRepository) FindOffersByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.ProductInfo, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ProductInfo), args.Error(1)
}

func newCatalogRouter(shopRepo *MockShopRepository, categoryRepo *MockCategoryRepository, productRepo *MockProductRepository) *gin.Engine {
	service := catalogapp.NewService(shopRepo, categoryRepo, productRepo, zap.NewNop())
	engine := gin.New()
	NewCatalogHandler(service).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestCatalogHandler_ListShops(t *testing.T) {
	shopRepo := new(MockShopRepository)
	engine := newCatalogRouter(shopRepo, new(MockCategoryRepository), new(MockProductRepository))

	shop := &catalog.Shop{
		BaseEntity: shared.BaseEntity{ID: uuid.New()},
		Name:       "Svyaznoy",
		State:      true,
	}
	shopRepo.On("FindAllActive", mock.Anything).Return([]*catalog.Shop{shop}, nil)

	req := httptest.NewRequest("GET", "/api/v1/shops", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Status":true`)
	assert.Contains(t, w.Body.String(), "Svyaznoy")
	shopRepo.AssertExpectations(t)
}

func TestCatalogHandler_SearchOffers(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		engine := newCatalogRouter(new(MockShopRepository), new(MockCategoryRepository), productRepo)

		shopID := uuid.New()
		offer := &catalog.ProductInfo{
			BaseEntity: shared.BaseEntity{ID: uuid.New()},
			ShopID:     shopID,
			Model:      "iphone-15",
			Quantity:   3,
			Price:      decimal.RequireFromString("79990.00"),
			PriceRRC:   decimal.RequireFromString("84990.00"),
			Product: catalog.Product{
				BaseEntity: shared.BaseEntity{ID: uuid.New()},
				Name:       "Smartphone",
				Category:   catalog.Category{Name: "Phones"},
			},
		}
		productRepo.On("SearchOffers", mock.Anything, mock.MatchedBy(func(f catalog.OfferFilter) bool {
			return f.ShopID != nil && *f.ShopID == shopID && f.CategoryID == nil
		})).Return([]*catalog.ProductInfo{offer}, nil)

		req := httptest.NewRequest("GET", "/api/v1/products?shop_id="+shopID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "iphone-15")
		assert.Contains(t, w.Body.String(), "Phones")
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects malformed shop_id", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		engine := newCatalogRouter(new(MockShopRepository), new(MockCategoryRepository), productRepo)

		req := httptest.NewRequest("GET", "/api/v1/products?shop_id=not-a-uuid", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"Status":false`)
		productRepo.AssertNotCalled(t, "SearchOffers", mock.Anything, mock.Anything)
	})
}

func TestCatalogHandler_ListCategories(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	engine := newCatalogRouter(new(MockShopRepository), categoryRepo, new(MockProductRepository))

	categoryRepo.On("FindAll", mock.Anything).Return([]*catalog.Category{
		{BaseEntity: shared.BaseEntity{ID: uuid.New()}, Name: "Phones"},
		{BaseEntity: shared.BaseEntity{ID: uuid.New()}, Name: "Accessories"},
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/categories", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Phones")
	assert.Contains(t, w.Body.String(), "Accessories")
}
