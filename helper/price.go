package helper

import (
	"babyboo_store/constants"
	"babyboo_store/model"

	"github.com/shopspring/decimal"
)

// PriceBreakdown là kết quả một lần tính giá giỏ hàng
type PriceBreakdown struct {
	ItemsPrice     decimal.Decimal `json:"itemsPrice"`
	ShippingPrice  decimal.Decimal `json:"shippingPrice"`
	TaxPrice       decimal.Decimal `json:"taxPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
}

// ItemsPrice = Σ(đơn giá × số lượng)
func ItemsPrice(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ShippingFee áp ngưỡng miễn ship lên phí đã báo giá từ GHN.
// hasQuote = false nghĩa là chưa có báo giá, dùng phí phẳng mặc định.
func ShippingFee(itemsPrice, quotedFee decimal.Decimal, hasQuote bool) decimal.Decimal {
	shipping := quotedFee
	if !hasQuote {
		shipping = decimal.NewFromInt(constants.FLAT_SHIPPING_FEE)
	}
	// Miễn ship khi đạt ngưỡng
	if itemsPrice.GreaterThanOrEqual(decimal.NewFromInt(constants.FREE_SHIPPING_THRESHOLD)) {
		shipping = decimal.Zero
	}
	return shipping
}

// PromoDiscount tính số tiền giảm của một mã trên giá hàng và phí ship hiện
// hành. Điểm tính DUY NHẤT cho cả Pricing Engine lẫn endpoint validate mã.
func PromoDiscount(promo *model.Promotion, itemsPrice, shipping decimal.Decimal) decimal.Decimal {
	switch promo.DiscountType {
	case constants.DISCOUNT_PERCENTAGE:
		discount := itemsPrice.Mul(promo.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
		if promo.MaxDiscount != nil && discount.GreaterThan(*promo.MaxDiscount) {
			discount = *promo.MaxDiscount
		}
		return discount
	case constants.DISCOUNT_FIXED_AMOUNT:
		discount := promo.DiscountValue
		if discount.GreaterThan(itemsPrice) {
			discount = itemsPrice
		}
		return discount
	case constants.DISCOUNT_FREE_SHIP:
		return shipping
	}
	return decimal.Zero
}

// ComputeTotals tính toàn bộ breakdown giá. Hàm thuần, không I/O, gọi lại
// sau MỌI mutation giỏ hàng (thêm/xóa/đổi số lượng/áp mã/bỏ mã).
func ComputeTotals(items []model.CartItem, promo *model.Promotion, quotedFee decimal.Decimal, hasQuote bool) PriceBreakdown {
	itemsPrice := ItemsPrice(items)
	shipping := ShippingFee(itemsPrice, quotedFee, hasQuote)

	// VAT 10%, làm tròn về đơn vị tiền nguyên
	tax := itemsPrice.Mul(decimal.NewFromInt(constants.TAX_RATE_PERCENT)).Div(decimal.NewFromInt(100)).Round(0)

	discount := decimal.Zero
	if promo != nil {
		discount = PromoDiscount(promo, itemsPrice, shipping)
		if promo.DiscountType == constants.DISCOUNT_FREE_SHIP {
			shipping = decimal.Zero
		}
	}

	total := itemsPrice.Add(shipping).Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return PriceBreakdown{
		ItemsPrice:     itemsPrice,
		ShippingPrice:  shipping,
		TaxPrice:       tax,
		DiscountAmount: discount,
		TotalPrice:     total,
	}
}
