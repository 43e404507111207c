package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

func TestOrderStatus_Transiciones(t *testing.T) {
	tests := []struct {
		from, to entity.OrderStatus
		ok       bool
	}{
		{entity.OrderPending, entity.OrderReady, true},
		{entity.OrderReady, entity.OrderShipped, true},
		{entity.OrderShipped, entity.OrderDelivered, true},
		{entity.OrderPending, entity.OrderCancelled, true},
		{entity.OrderShipped, entity.OrderCancelled, true},
		{entity.OrderPending, entity.OrderShipped, false},
		{entity.OrderDelivered, entity.OrderCancelled, false},
		{entity.OrderCancelled, entity.OrderPending, false},
		{entity.OrderReady, entity.OrderReady, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
			err := entity.CheckTransition(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			}
		})
	}
}

func TestOrderStatus_Terminales(t *testing.T) {
	assert.True(t, entity.OrderDelivered.Terminal())
	assert.True(t, entity.OrderCancelled.Terminal())
	assert.False(t, entity.OrderPending.Terminal())
	assert.False(t, entity.OrderStatus("lost").Terminal())
}

func TestCheckTransition_EstadoDesconocido(t *testing.T) {
	assert.ErrorIs(t, entity.CheckTransition(entity.OrderPending, "lost"), domain.ErrInvalidInput)
}

func TestParseOrderStatus(t *testing.T) {
	st, ok := entity.ParseOrderStatus("shipped")
	assert.True(t, ok)
	assert.Equal(t, entity.OrderShipped, st)

	_, ok = entity.ParseOrderStatus("en camino")
	assert.False(t, ok)
}

func TestComputeTotals(t *testing.T) {
	items := []entity.OrderItem{
		{UnitPrice: decimal.NewFromInt(10), Quantity: 2},
		{UnitPrice: decimal.NewFromInt(5), Quantity: 1},
	}
	tot := entity.ComputeTotals(items)
	assert.Equal(t, 3, tot.ItemsCount)
	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(25)))
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(25)))
}
