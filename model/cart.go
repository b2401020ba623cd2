package model

import "github.com/shopspring/decimal"

// CartItem là một dòng hàng trong giỏ, snapshot giá và tồn kho tại lúc thêm
type CartItem struct {
	ProductID       uint              `json:"productId"`
	Name            string            `json:"name"`
	Image           string            `json:"image"`
	Price           decimal.Decimal   `json:"price"`
	Quantity        int               `json:"quantity"`
	Stock           int               `json:"stock"` // snapshot để chặn qty vượt tồn
	Personalization map[string]string `json:"personalization,omitempty"`
}

// CartState là trạng thái giỏ hàng tuần tự hóa được, lưu Redis theo session.
// Mọi mutation phải chạy lại recompute giá trước khi lưu.
type CartState struct {
	Items           []CartItem            `json:"items"`
	ShippingAddress *ShippingAddressInput `json:"shippingAddress,omitempty"`
	ShippingService string                `json:"shippingService,omitempty"`
	ShippingFee     decimal.Decimal       `json:"shippingFee"`
	HasShippingFee  bool                  `json:"hasShippingFee"` // false khi chưa có báo giá GHN
	PaymentMethod   string                `json:"paymentMethod,omitempty"`
	PromotionCode   string                `json:"promotionCode,omitempty"`

	// Giá dẫn xuất – kết quả của lần recompute gần nhất
	ItemsPrice     decimal.Decimal `json:"itemsPrice"`
	ShippingPrice  decimal.Decimal `json:"shippingPrice"`
	TaxPrice       decimal.Decimal `json:"taxPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
}

type AddCartItemInput struct {
	ProductID       uint              `json:"productId" validate:"required,gt=0"`
	Quantity        int               `json:"quantity" validate:"required,gte=1"`
	Personalization map[string]string `json:"personalization"`
}

type UpdateCartItemInput struct {
	ProductID uint `json:"productId" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

type UpdateCartShippingInput struct {
	Address   *ShippingAddressInput `json:"address"`
	ServiceID int                   `json:"serviceId"`
	Service   string                `json:"service"`
	Fee       decimal.Decimal       `json:"fee"`
	HasFee    bool                  `json:"hasFee"`
	Payment   string                `json:"payment" validate:"omitempty,oneof=cod bank_transfer momo paypal stripe"`
}
