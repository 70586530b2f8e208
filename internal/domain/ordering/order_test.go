package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/domain/catalog"
)

func TestOrderStatus_IsValid(t *testing.T) {
	valid := []OrderStatus{
		StatusBasket, StatusNew, StatusConfirmed, StatusAssembled,
		StatusSent, StatusDelivered, StatusCanceled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusBasket, StatusNew, true},
		{StatusBasket, StatusConfirmed, false},
		{StatusBasket, StatusCanceled, false},
		{StatusNew, StatusConfirmed, true},
		{StatusNew, StatusCanceled, true},
		{StatusNew, StatusAssembled, false},
		{StatusConfirmed, StatusAssembled, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusAssembled, StatusSent, true},
		{StatusSent, StatusDelivered, true},
		{StatusSent, StatusCanceled, true},
		{StatusDelivered, StatusCanceled, false},
		{StatusCanceled, StatusNew, false},
		{StatusDelivered, StatusDelivered, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatus_Predicates(t *testing.T) {
	assert.False(t, StatusBasket.IsPlaced())
	assert.True(t, StatusNew.IsPlaced())
	assert.True(t, StatusDelivered.IsPlaced())
	assert.False(t, OrderStatus("bogus").IsPlaced())

	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	assert.False(t, StatusSent.IsTerminal())
}

func TestOrder_TransitionTo(t *testing.T) {
	order := NewBasket(uuid.New())
	assert.True(t, order.IsBasket())

	require.NoError(t, order.TransitionTo(StatusNew))
	assert.Equal(t, StatusNew, order.Status)

	err := order.TransitionTo(StatusSent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_STATUS_TRANSITION")
	assert.Equal(t, StatusNew, order.Status)

	err = order.TransitionTo(OrderStatus("lost"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_STATUS")
}

func TestOrder_TransitionTo_FullLifecycle(t *testing.T) {
	order := NewBasket(uuid.New())
	for _, next := range []OrderStatus{
		StatusNew, StatusConfirmed, StatusAssembled, StatusSent, StatusDelivered,
	} {
		require.NoError(t, order.TransitionTo(next))
	}
	assert.True(t, order.Status.IsTerminal())
}

func TestNewOrderItem(t *testing.T) {
	item, err := NewOrderItem(uuid.New(), uuid.New(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	_, err = NewOrderItem(uuid.New(), uuid.New(), 0)
	assert.Error(t, err)

	_, err = NewOrderItem(uuid.New(), uuid.New(), -1)
	assert.Error(t, err)
}

func TestOrder_Total(t *testing.T) {
	order := NewBasket(uuid.New())
	order.Items = []OrderItem{
		{
			Quantity:    2,
			ProductInfo: catalog.ProductInfo{Price: decimal.NewFromInt(100)},
		},
		{
			Quantity:    3,
			ProductInfo: catalog.ProductInfo{Price: decimal.RequireFromString("19.99")},
		},
	}

	assert.True(t, order.Total().Equal(decimal.RequireFromString("259.97")),
		"got %s", order.Total())
}

func TestOrder_Total_Empty(t *testing.T) {
	order := NewBasket(uuid.New())
	assert.True(t, order.Total().IsZero())
}
