package model

import "time"

type TokenClaim struct {
	CustomerId uint   `json:"customerId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      *int  `json:"limit"`
	Page       *int  `json:"page"`
	TotalCount int64 `json:"totalCount"`
}

type Pagination struct {
	Limit *int `json:"limit" query:"limit"`
	Page  *int `json:"page" query:"page"`
}

// Resolve áp mặc định limit 20 / page 1 cho tham số thiếu hoặc không hợp lệ
func (p Pagination) Resolve() (limit, page int) {
	limit, page = 20, 1
	if p.Limit != nil && *p.Limit > 0 {
		limit = *p.Limit
	}
	if p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	return limit, page
}
