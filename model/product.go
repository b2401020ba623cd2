package model

import "github.com/shopspring/decimal"

type Product struct {
	DTO
	Name       string          `gorm:"not null" json:"name"`
	Slug       string          `gorm:"unique;size:255" json:"slug"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	SalePrice  decimal.Decimal `gorm:"type:decimal(14,2)" json:"salePrice"`
	OnSale     bool            `gorm:"default:false" json:"onSale"`
	Stock      int             `gorm:"not null;default:0" json:"stock"`
	SalesCount int             `gorm:"not null;default:0" json:"salesCount"`
	CategoryID *uint           `json:"categoryId,omitempty"`
}

// UnitPrice trả về giá bán hiện hành (giá sale nếu đang sale)
func (p *Product) UnitPrice() decimal.Decimal {
	if p.OnSale && p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.Price
}
