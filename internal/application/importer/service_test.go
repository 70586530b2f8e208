package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// memoryStore is an in-memory Store for exercising the import flow.
type memoryStore struct {
	shops      map[uuid.UUID]*catalog.Shop // by owner
	categories map[string]*catalog.Category
	links      map[uuid.UUID][]uuid.UUID // shop -> categories
	products   []*catalog.Product
	offers     []*catalog.ProductInfo
	parameters map[string]*catalog.Parameter
	offerParams []*catalog.ProductParameter

	failOnOffer bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		shops:      make(map[uuid.UUID]*catalog.Shop),
		categories: make(map[string]*catalog.Category),
		links:      make(map[uuid.UUID][]uuid.UUID),
		parameters: make(map[string]*catalog.Parameter),
	}
}

type memoryScope struct {
	store *memoryStore
}

func (s *memoryScope) Execute(_ context.Context, fn func(store Store) error) error {
	// Not transactional; tests assert on the final state only.
	return fn(s.store)
}

func (m *memoryStore) GetOrCreateShop(_ context.Context, userID uuid.UUID, name string) (*catalog.Shop, error) {
	if shop, ok := m.shops[userID]; ok {
		if err := shop.Rename(name); err != nil {
			return nil, err
		}
		return shop, nil
	}
	shop, err := catalog.NewShop(userID, name)
	if err != nil {
		return nil, err
	}
	shop.ID = uuid.New()
	m.shops[userID] = shop
	return shop, nil
}

func (m *memoryStore) SaveShop(_ context.Context, shop *catalog.Shop) error {
	m.shops[shop.UserID] = shop
	return nil
}

func (m *memoryStore) UpsertCategory(_ context.Context, name string) (*catalog.Category, error) {
	if category, ok := m.categories[name]; ok {
		return category, nil
	}
	category, err := catalog.NewCategory(name)
	if err != nil {
		return nil, err
	}
	category.ID = uuid.New()
	m.categories[name] = category
	return category, nil
}

func (m *memoryStore) FindCategoryByName(_ context.Context, name string) (*catalog.Category, error) {
	if category, ok := m.categories[name]; ok {
		return category, nil
	}
	return nil, errors.New("not found")
}

func (m *memoryStore) LinkShopCategory(_ context.Context, shopID, categoryID uuid.UUID) error {
	for _, linked := range m.links[shopID] {
		if linked == categoryID {
			return nil
		}
	}
	m.links[shopID] = append(m.links[shopID], categoryID)
	return nil
}

func (m *memoryStore) ClearShopCatalog(_ context.Context, shopID uuid.UUID) error {
	var products []*catalog.Product
	for _, p := range m.products {
		if p.ShopID != shopID {
			products = append(products, p)
		}
	}
	m.products = products

	var offers []*catalog.ProductInfo
	kept := make(map[uuid.UUID]bool)
	for _, o := range m.offers {
		if o.ShopID != shopID {
			offers = append(offers, o)
			kept[o.ID] = true
		}
	}
	m.offers = offers

	var offerParams []*catalog.ProductParameter
	for _, op := range m.offerParams {
		if kept[op.ProductInfoID] {
			offerParams = append(offerParams, op)
		}
	}
	m.offerParams = offerParams
	return nil
}

func (m *memoryStore) GetOrCreateProduct(_ context.Context, product *catalog.Product) (*catalog.Product, error) {
	for _, p := range m.products {
		if p.ShopID == product.ShopID && p.ExternalID == product.ExternalID {
			return p, nil
		}
	}
	product.ID = uuid.New()
	m.products = append(m.products, product)
	return product, nil
}

func (m *memoryStore) GetOrCreateOffer(_ context.Context, offer *catalog.ProductInfo) (*catalog.ProductInfo, error) {
	if m.failOnOffer {
		return nil, errors.New("disk full")
	}
	for _, o := range m.offers {
		if o.ProductID == offer.ProductID && o.ShopID == offer.ShopID &&
			o.Model == offer.Model && o.Quantity == offer.Quantity &&
			o.Price.Equal(offer.Price) && o.PriceRRC.Equal(offer.PriceRRC) {
			return o, nil
		}
	}
	offer.ID = uuid.New()
	m.offers = append(m.offers, offer)
	return offer, nil
}

func (m *memoryStore) UpsertParameter(_ context.Context, name string) (*catalog.Parameter, error) {
	if parameter, ok := m.parameters[name]; ok {
		return parameter, nil
	}
	parameter := &catalog.Parameter{Name: name}
	parameter.ID = uuid.New()
	m.parameters[name] = parameter
	return parameter, nil
}

func (m *memoryStore) UpsertOfferParameter(_ context.Context, link *catalog.ProductParameter) error {
	for _, existing := range m.offerParams {
		if existing.ProductInfoID == link.ProductInfoID && existing.ParameterID == link.ParameterID {
			existing.Value = link.Value
			return nil
		}
	}
	m.offerParams = append(m.offerParams, link)
	return nil
}

var _ Store = (*memoryStore)(nil)

func newTestService(store *memoryStore) *Service {
	return NewService(&memoryScope{store: store}, zap.NewNop())
}

func TestService_Import(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	userID := uuid.New()

	result, err := svc.Import(context.Background(), userID, []byte(jsonFeed), "pricelists/feed.json")
	require.NoError(t, err)

	assert.Equal(t, "Svyaznoy", result.ShopName)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Skipped)

	shop := store.shops[userID]
	require.NotNil(t, shop)
	assert.Equal(t, "pricelists/feed.json", shop.FileRef)

	require.Len(t, store.products, 1)
	assert.Equal(t, int64(4216292), store.products[0].ExternalID)
	require.Len(t, store.offers, 1)
	assert.Equal(t, 14, store.offers[0].Quantity)
	assert.Len(t, store.offerParams, 3)

	// Declared categories are linked to the shop
	assert.Len(t, store.links[shop.ID], 2)
}

func TestService_Import_CollapsesDuplicateGood(t *testing.T) {
	feed := `{
  "shop": "Repeats",
  "goods": [
    {"id": 7, "category": "Phones", "name": "Pixel 9", "model": "google/pixel-9", "price": 80000, "price_rrc": 85000, "quantity": 3, "parameters": {"Color": "obsidian"}},
    {"id": 7, "category": "Phones", "name": "Pixel 9", "model": "google/pixel-9", "price": 80000, "price_rrc": 85000, "quantity": 3, "parameters": {"Color": "obsidian"}}
  ]
}`
	store := newMemoryStore()
	svc := newTestService(store)

	result, err := svc.Import(context.Background(), uuid.New(), []byte(feed), "")
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)

	require.Len(t, store.products, 1)
	require.Len(t, store.offers, 1)
	assert.Len(t, store.offerParams, 1)
}

func TestService_Import_ReplacesCatalog(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	userID := uuid.New()

	_, err := svc.Import(context.Background(), userID, []byte(jsonFeed), "")
	require.NoError(t, err)

	second := `{
  "shop": "Svyaznoy Renamed",
  "goods": [
    {"id": 99, "category": "Tablets", "name": "iPad", "price": 50000, "price_rrc": 52000, "quantity": 2}
  ]
}`
	result, err := svc.Import(context.Background(), userID, []byte(second), "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	// Old catalog is gone, shop is renamed in place
	require.Len(t, store.products, 1)
	assert.Equal(t, int64(99), store.products[0].ExternalID)
	assert.Equal(t, "Svyaznoy Renamed", store.shops[userID].Name)
	assert.Len(t, store.shops, 1)
}

func TestService_Import_SkipsUnresolvableCategory(t *testing.T) {
	feed := `{
  "shop": "Partial",
  "categories": [{"id": 1, "name": "Known"}],
  "goods": [
    {"id": 10, "category": 1, "name": "kept", "price": 1, "price_rrc": 1, "quantity": 1},
    {"id": 11, "category": 777, "name": "undeclared id", "price": 1, "price_rrc": 1, "quantity": 1},
    {"id": 12, "name": "no category at all", "price": 1, "price_rrc": 1, "quantity": 1}
  ]
}`
	store := newMemoryStore()
	svc := newTestService(store)

	result, err := svc.Import(context.Background(), uuid.New(), []byte(feed), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, int64(11), result.Skipped[0].ExternalID)
	assert.Contains(t, result.Skipped[0].Reason, "not declared")
	assert.Equal(t, int64(12), result.Skipped[1].ExternalID)
}

func TestService_Import_SkipsInvalidGood(t *testing.T) {
	feed := `{
  "shop": "Bad rows",
  "goods": [
    {"id": 1, "category": "C", "name": "negative stock", "price": 1, "price_rrc": 1, "quantity": -5},
    {"id": 2, "category": "C", "name": "fine", "price": 1, "price_rrc": 1, "quantity": 0}
  ]
}`
	store := newMemoryStore()
	svc := newTestService(store)

	result, err := svc.Import(context.Background(), uuid.New(), []byte(feed), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, int64(1), result.Skipped[0].ExternalID)
}

func TestService_Import_StructuralErrorAborts(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.Import(context.Background(), uuid.New(), []byte(`{"shop": "x"}`), "")
	require.Error(t, err)
	assert.Empty(t, store.shops)
}

func TestService_Import_StorageErrorAborts(t *testing.T) {
	store := newMemoryStore()
	store.failOnOffer = true
	svc := newTestService(store)

	_, err := svc.Import(context.Background(), uuid.New(), []byte(jsonFeed), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
