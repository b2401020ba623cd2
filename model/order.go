package model

import (
	"time"

	"babyboo_store/constants"

	"github.com/shopspring/decimal"
)

type Order struct {
	DTO
	OrderNumber string    `gorm:"unique;size:20" json:"orderNumber"` // BB-YYMMDD-NNNN
	CustomerID  *uint     `json:"customerId,omitempty"`              // null nếu khách vãng lai
	Customer    *Customer `json:"customer,omitempty"`

	Status string `gorm:"default:pending" json:"status"`

	// Các thành phần tiền tệ – TotalAmount luôn được tính lại từ 4 trường còn lại
	SubTotal     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"subTotal"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"shippingCost"`
	Discount     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"discount"`
	Tax          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"tax"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"totalAmount"`

	// Snapshot địa chỉ giao hàng (JSON), không tham chiếu bản ghi sống
	ShippingAddress string `gorm:"type:text" json:"shippingAddress"`
	ShippingService string `json:"shippingService"`

	PaymentMethod string     `gorm:"not null" json:"paymentMethod"`
	PaymentStatus string     `gorm:"default:pending" json:"paymentStatus"`
	IsPaid        bool       `gorm:"default:false" json:"isPaid"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	PaymentRef    string     `json:"paymentRef,omitempty"` // requestId / provider order id
	PaymentResult string     `gorm:"type:text" json:"-"`   // payload trả về từ cổng thanh toán

	TrackingNumber   string `json:"trackingNumber,omitempty"`
	ShippingProvider string `json:"shippingProvider,omitempty"`

	PromotionID   *uint  `json:"promotionId,omitempty"`
	PromotionCode string `json:"promotionCode,omitempty"`

	VATInvoice     bool   `gorm:"default:false" json:"vatInvoice"`
	VATCompanyName string `json:"vatCompanyName,omitempty"`
	VATTaxCode     string `json:"vatTaxCode,omitempty"`
	VATAddress     string `json:"vatAddress,omitempty"`

	CancelReason string     `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	DeliveredAt  *time.Time `json:"deliveredAt,omitempty"`

	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// RecomputeTotal tính lại TotalAmount từ các thành phần, không bao giờ âm
func (o *Order) RecomputeTotal() {
	total := o.SubTotal.Add(o.ShippingCost).Add(o.Tax).Sub(o.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.TotalAmount = total
}

// IsTerminal: delivered và cancelled là trạng thái cuối
func (o *Order) IsTerminal() bool {
	return o.Status == constants.ORDER_DELIVERED || o.Status == constants.ORDER_CANCELLED
}

func IsValidOrderStatus(s string) bool {
	switch s {
	case constants.ORDER_PENDING, constants.ORDER_PROCESSING, constants.ORDER_SHIPPING,
		constants.ORDER_DELIVERED, constants.ORDER_CANCELLED:
		return true
	}
	return false
}

type OrderItem struct {
	DTO
	OrderID   uint `gorm:"not null;index" json:"orderId"`
	ProductID uint `gorm:"not null" json:"productId"`

	// Snapshot tại thời điểm đặt hàng, không đổi khi catalog thay đổi
	Name            string          `gorm:"not null" json:"name"`
	Image           string          `json:"image"`
	Price           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"lineTotal"`
	Personalization string          `gorm:"type:text" json:"personalization,omitempty"`
}

type ShippingAddressInput struct {
	FullName   string `json:"fullName" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Street     string `json:"street" validate:"required"`
	ProvinceID int    `json:"provinceId" validate:"required"`
	Province   string `json:"province"`
	DistrictID int    `json:"districtId" validate:"required"`
	District   string `json:"district"`
	WardCode   string `json:"wardCode" validate:"required"`
	Ward       string `json:"ward"`
}

type CreateOrderItemInput struct {
	ProductID       uint              `json:"productId" validate:"required,gt=0"`
	Quantity        int               `json:"quantity" validate:"required,gte=1"`
	Personalization map[string]string `json:"personalization"`
}

type CreateOrderInput struct {
	Items           []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput   `json:"shippingAddress" validate:"required"`
	ShippingService string                 `json:"shippingService"`
	ShippingFee     decimal.Decimal        `json:"shippingFee"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,oneof=cod bank_transfer momo paypal stripe"`
	PromotionCode   string                 `json:"promotionCode"`
	TotalPrice      decimal.Decimal        `json:"totalPrice" validate:"required"`
	VATInvoice      bool                   `json:"vatInvoice"`
	VATCompanyName  string                 `json:"vatCompanyName"`
	VATTaxCode      string                 `json:"vatTaxCode"`
	VATAddress      string                 `json:"vatAddress"`
	CustomerName    string                 `json:"customerName" validate:"required"`
	Phone           string                 `json:"phone" validate:"required"`
	Email           string                 `json:"email" validate:"required,email"`
}

type UpdateOrderStatusInput struct {
	Status         string `json:"status" validate:"required,oneof=pending processing shipping delivered cancelled"`
	TrackingNumber string `json:"trackingNumber"`
	CancelReason   string `json:"cancelReason"`
}

type OrderItemResponse struct {
	ProductID       uint            `json:"productId"`
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	Personalization string          `json:"personalization,omitempty"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Status        string              `json:"status"`
	SubTotal      decimal.Decimal     `json:"subTotal"`
	ShippingCost  decimal.Decimal     `json:"shippingCost"`
	Discount      decimal.Decimal     `json:"discount"`
	Tax           decimal.Decimal     `json:"tax"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	PaymentMethod string              `json:"paymentMethod"`
	PaymentStatus string              `json:"paymentStatus"`
	IsPaid        bool                `json:"isPaid"`
	PaidAt        *time.Time          `json:"paidAt,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
}
