package helper

import (
	"babyboo_store/constants"
	"babyboo_store/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func cartItems(prices ...int64) []model.CartItem {
	items := make([]model.CartItem, 0, len(prices))
	for i, p := range prices {
		items = append(items, model.CartItem{
			ProductID: uint(i + 1),
			Price:     d(p),
			Quantity:  1,
		})
	}
	return items
}

func TestItemsPrice(t *testing.T) {
	items := []model.CartItem{
		{ProductID: 1, Price: d(100000), Quantity: 2},
		{ProductID: 2, Price: d(50000), Quantity: 3},
	}
	assert.True(t, ItemsPrice(items).Equal(d(350000)))
	assert.True(t, ItemsPrice(nil).Equal(decimal.Zero))
}

func TestComputeTotalsBasic(t *testing.T) {
	// 400.000đ hàng, phí ship báo giá 30.000đ, VAT 10%
	b := ComputeTotals(cartItems(400000), nil, d(30000), true)

	assert.True(t, b.ItemsPrice.Equal(d(400000)))
	assert.True(t, b.ShippingPrice.Equal(d(30000)))
	assert.True(t, b.TaxPrice.Equal(d(40000)))
	assert.True(t, b.DiscountAmount.Equal(decimal.Zero))
	assert.True(t, b.TotalPrice.Equal(d(470000)))
}

func TestComputeTotalsLaw(t *testing.T) {
	// total = items + shipping + tax - discount, với mọi breakdown
	promo := &model.Promotion{DiscountType: "percentage", DiscountValue: d(15)}
	cases := []struct {
		items    []model.CartItem
		promo    *model.Promotion
		fee      decimal.Decimal
		hasQuote bool
	}{
		{cartItems(120000, 80000), nil, d(25000), true},
		{cartItems(120000, 80000), promo, d(25000), true},
		{cartItems(700000), promo, d(25000), true},
		{cartItems(10000), &model.Promotion{DiscountType: "fixed_amount", DiscountValue: d(50000)}, d(30000), true},
	}

	for _, tc := range cases {
		b := ComputeTotals(tc.items, tc.promo, tc.fee, tc.hasQuote)
		expect := b.ItemsPrice.Add(b.ShippingPrice).Add(b.TaxPrice).Sub(b.DiscountAmount)
		if expect.IsNegative() {
			expect = decimal.Zero
		}
		assert.True(t, b.TotalPrice.Equal(expect), "total phải khớp công thức: %s", b.TotalPrice)
		assert.False(t, b.TotalPrice.IsNegative())
	}
}

func TestComputeTotalsFlatFeeWithoutQuote(t *testing.T) {
	b := ComputeTotals(cartItems(100000), nil, decimal.Zero, false)
	assert.True(t, b.ShippingPrice.Equal(d(30000)))
}

func TestComputeTotalsFreeShippingThreshold(t *testing.T) {
	// Đạt ngưỡng 500.000đ thì phí ship về 0 dù đã có báo giá
	b := ComputeTotals(cartItems(500000), nil, d(45000), true)
	assert.True(t, b.ShippingPrice.Equal(decimal.Zero))

	under := ComputeTotals(cartItems(499999), nil, d(45000), true)
	assert.True(t, under.ShippingPrice.Equal(d(45000)))
}

func TestComputeTotalsPercentageCap(t *testing.T) {
	cap := d(150000)
	promo := &model.Promotion{
		DiscountType:  "percentage",
		DiscountValue: d(20),
		MaxDiscount:   &cap,
	}

	// 20% của 1.000.000đ là 200.000đ nhưng bị chặn ở 150.000đ
	b := ComputeTotals(cartItems(1000000), promo, d(30000), true)
	assert.True(t, b.DiscountAmount.Equal(d(150000)))

	// Dưới trần thì giữ nguyên phần trăm
	small := ComputeTotals(cartItems(200000), promo, d(30000), true)
	assert.True(t, small.DiscountAmount.Equal(d(40000)))
}

func TestComputeTotalsFixedAmountFloor(t *testing.T) {
	promo := &model.Promotion{DiscountType: "fixed_amount", DiscountValue: d(100000)}

	// Giảm cố định không vượt quá tiền hàng
	b := ComputeTotals(cartItems(60000), promo, d(30000), true)
	assert.True(t, b.DiscountAmount.Equal(d(60000)))
	assert.False(t, b.TotalPrice.IsNegative())
}

func TestComputeTotalsFreeShipPromo(t *testing.T) {
	promo := &model.Promotion{DiscountType: "free_shipping"}

	b := ComputeTotals(cartItems(200000), promo, d(30000), true)
	require.True(t, b.ShippingPrice.Equal(decimal.Zero))
	assert.True(t, b.DiscountAmount.Equal(d(30000)))
	// items 200.000 + tax 20.000 + ship 0 - discount 30.000... discount ghi
	// nhận bằng phí ship cũ, tổng = items + tax
	assert.True(t, b.TotalPrice.Equal(d(190000)))
}

func TestComputeTotalsTaxRounding(t *testing.T) {
	// 10% của 15.555 là 1.555,5 → làm tròn về 1.556
	b := ComputeTotals(cartItems(15555), nil, d(0), true)
	assert.True(t, b.TaxPrice.Equal(d(1556)))
}

func TestShippingFee(t *testing.T) {
	// Chưa có báo giá → phí phẳng, có báo giá → dùng báo giá
	assert.True(t, ShippingFee(d(100000), decimal.Zero, false).Equal(d(30000)))
	assert.True(t, ShippingFee(d(100000), d(45000), true).Equal(d(45000)))

	// Đạt ngưỡng miễn ship thì phí về 0 bất kể báo giá
	assert.True(t, ShippingFee(d(500000), d(45000), true).Equal(decimal.Zero))
	assert.True(t, ShippingFee(d(500000), decimal.Zero, false).Equal(decimal.Zero))
}

func TestPromoDiscountMatchesBreakdown(t *testing.T) {
	// Endpoint validate mã và Pricing Engine dùng chung một công thức,
	// cùng input phải ra cùng số tiền giảm
	maxDiscount := d(150000)
	promos := []*model.Promotion{
		{DiscountType: constants.DISCOUNT_PERCENTAGE, DiscountValue: d(20), MaxDiscount: &maxDiscount},
		{DiscountType: constants.DISCOUNT_FIXED_AMOUNT, DiscountValue: d(50000)},
		{DiscountType: constants.DISCOUNT_FREE_SHIP},
	}
	items := cartItems(200000, 150000)

	for _, promo := range promos {
		b := ComputeTotals(items, promo, d(25000), true)
		shipping := ShippingFee(ItemsPrice(items), d(25000), true)
		got := PromoDiscount(promo, ItemsPrice(items), shipping)
		assert.True(t, got.Equal(b.DiscountAmount),
			"%s: %s != %s", promo.DiscountType, got, b.DiscountAmount)
	}
}
