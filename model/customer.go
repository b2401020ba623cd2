package model

type Customer struct {
	DTO
	Name     string `json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"-"`
	Role     string `gorm:"default:customer" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}
