package helper

import (
	"babyboo_store/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart:customer:12", CartKey(12, "abc"))
	assert.Equal(t, "cart:guest:abc", CartKey(0, "abc"))
}

func TestRecomputeCart(t *testing.T) {
	cart := &model.CartState{
		Items: []model.CartItem{
			{ProductID: 1, Price: decimal.NewFromInt(100000), Quantity: 2},
		},
		ShippingFee:    decimal.NewFromInt(30000),
		HasShippingFee: true,
		PromotionCode:  "BBWELCOME",
	}
	promo := &model.Promotion{
		Code:          "BBWELCOME",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
	}

	RecomputeCart(cart, promo)

	assert.True(t, cart.ItemsPrice.Equal(decimal.NewFromInt(200000)))
	assert.True(t, cart.ShippingPrice.Equal(decimal.NewFromInt(30000)))
	assert.True(t, cart.TaxPrice.Equal(decimal.NewFromInt(20000)))
	assert.True(t, cart.DiscountAmount.Equal(decimal.NewFromInt(20000)))
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromInt(230000)))
	assert.Equal(t, "BBWELCOME", cart.PromotionCode)
}

func TestRecomputeCartDropsInvalidPromo(t *testing.T) {
	cart := &model.CartState{
		Items: []model.CartItem{
			{ProductID: 1, Price: decimal.NewFromInt(50000), Quantity: 1},
		},
		PromotionCode: "EXPIRED",
	}

	// Mã không còn hợp lệ → gỡ khỏi giỏ và tính lại không giảm giá
	RecomputeCart(cart, nil)

	assert.Empty(t, cart.PromotionCode)
	assert.True(t, cart.DiscountAmount.Equal(decimal.Zero))
	// Chưa có báo giá ship → phí phẳng mặc định
	assert.True(t, cart.ShippingPrice.Equal(decimal.NewFromInt(30000)))
}

func TestRecomputeCartIdempotent(t *testing.T) {
	cart := &model.CartState{
		Items: []model.CartItem{
			{ProductID: 3, Price: decimal.NewFromInt(150000), Quantity: 3},
		},
		ShippingFee:    decimal.NewFromInt(25000),
		HasShippingFee: true,
	}

	RecomputeCart(cart, nil)
	first := cart.TotalPrice
	RecomputeCart(cart, nil)

	assert.True(t, cart.TotalPrice.Equal(first))
}
