package model

import "github.com/shopspring/decimal"

type PayPalConfig struct {
	ClientID string
	Secret   string
	BaseURL  string
	// Tỉ giá cố định VND → USD dùng để quy đổi khi tạo order PayPal
	ExchangeRate decimal.Decimal
}

type PayPalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type PayPalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PayPalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id,omitempty"`
	CustomID    string       `json:"custom_id,omitempty"` // orderNumber nội bộ để đối soát
	Amount      PayPalAmount `json:"amount"`
}

type PayPalCreateOrderRequest struct {
	Intent        string               `json:"intent"`
	PurchaseUnits []PayPalPurchaseUnit `json:"purchase_units"`
}

type PayPalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CreatePayPalOrderInput struct {
	OrderID uint `json:"orderId" validate:"required,gt=0"`
}

type CapturePayPalOrderInput struct {
	OrderID       uint   `json:"orderId" validate:"required,gt=0"`
	PayPalOrderID string `json:"paypalOrderId" validate:"required"`
}
