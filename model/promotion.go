package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Promotion struct {
	DTO
	Code          string           `gorm:"unique;not null" json:"code"` // lưu upper-case
	Name          string           `gorm:"not null" json:"name"`
	Description   string           `gorm:"type:text" json:"description"`
	DiscountType  string           `gorm:"not null" json:"discountType"` // percentage, fixed_amount, free_shipping
	DiscountValue decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"discountValue"`
	MinOrderValue decimal.Decimal  `gorm:"type:decimal(14,2)" json:"minOrderValue"`
	MaxDiscount   *decimal.Decimal `gorm:"type:decimal(14,2)" json:"maxDiscount,omitempty"`
	StartDate     time.Time        `gorm:"not null" json:"startDate"`
	EndDate       time.Time        `gorm:"not null" json:"endDate"`
	IsActive      bool             `gorm:"default:true" json:"isActive"`
	UsageLimit    int              `gorm:"default:0" json:"usageLimit"` // 0 = không giới hạn
	UsedCount     int              `gorm:"default:0" json:"usedCount"`
	PerUserLimit  int              `gorm:"default:1" json:"perUserLimit"`
}

type Promotions []Promotion

type CreatePromotionInput struct {
	Code          string           `json:"code" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	DiscountType  string           `json:"discountType" validate:"required,oneof=percentage fixed_amount free_shipping"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MinOrderValue decimal.Decimal  `json:"minOrderValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount"`
	StartDate     time.Time        `json:"startDate" validate:"required"`
	EndDate       time.Time        `json:"endDate" validate:"required"`
	UsageLimit    int              `json:"usageLimit"`
	PerUserLimit  int              `json:"perUserLimit"`
}

type ApplyPromotionInput struct {
	Code      string          `json:"code" validate:"required"`
	CartTotal decimal.Decimal `json:"cartTotal" validate:"required"`
}

type ApplyPromotionResult struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}
