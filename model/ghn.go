package model

import "github.com/shopspring/decimal"

// DTO cho Giao Hàng Nhanh (GHN) – chỉ map những trường hệ thống cần

type GHNProvince struct {
	ProvinceID   int    `json:"ProvinceID"`
	ProvinceName string `json:"ProvinceName"`
}

type GHNDistrict struct {
	DistrictID   int    `json:"DistrictID"`
	ProvinceID   int    `json:"ProvinceID"`
	DistrictName string `json:"DistrictName"`
}

type GHNWard struct {
	WardCode string `json:"WardCode"`
	WardName string `json:"WardName"`
}

type GHNService struct {
	ServiceID     int    `json:"service_id"`
	ShortName     string `json:"short_name"`
	ServiceTypeID int    `json:"service_type_id"`
}

type ShippingQuoteInput struct {
	ServiceID      int    `json:"serviceId" validate:"required,gt=0"`
	FromDistrictID int    `json:"fromDistrictId"`
	FromWardCode   string `json:"fromWardCode"`
	ToDistrictID   int    `json:"toDistrictId" validate:"required,gt=0"`
	ToWardCode     string `json:"toWardCode" validate:"required"`
	Weight         int    `json:"weight"` // gram, mặc định 500
	Length         int    `json:"length"` // cm, mặc định 10
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type ShippingQuote struct {
	ServiceID         int             `json:"serviceId"`
	Fee               decimal.Decimal `json:"fee"`
	EstimatedDelivery *int64          `json:"estimatedDelivery,omitempty"` // unix timestamp từ GHN
}
