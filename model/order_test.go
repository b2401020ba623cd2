package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecomputeTotal(t *testing.T) {
	order := Order{
		SubTotal:     decimal.NewFromInt(400000),
		ShippingCost: decimal.NewFromInt(30000),
		Tax:          decimal.NewFromInt(40000),
		Discount:     decimal.NewFromInt(50000),
	}
	order.RecomputeTotal()
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(420000)))

	// Tính lại lần nữa không đổi kết quả
	order.RecomputeTotal()
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(420000)))
}

func TestRecomputeTotalFloorsAtZero(t *testing.T) {
	order := Order{
		SubTotal: decimal.NewFromInt(10000),
		Discount: decimal.NewFromInt(99999),
	}
	order.RecomputeTotal()
	assert.True(t, order.TotalAmount.Equal(decimal.Zero))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipping", "delivered", "cancelled"} {
		assert.True(t, IsValidOrderStatus(s), s)
	}
	assert.False(t, IsValidOrderStatus("Pending"))
	assert.False(t, IsValidOrderStatus("shipped"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestOrderIsTerminal(t *testing.T) {
	assert.True(t, (&Order{Status: "delivered"}).IsTerminal())
	assert.True(t, (&Order{Status: "cancelled"}).IsTerminal())
	assert.False(t, (&Order{Status: "shipping"}).IsTerminal())
}
