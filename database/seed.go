package database

import (
	"babyboo_store/constants"
	"babyboo_store/model"
	"log"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func vnd(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456bb"), 10)
	passwordHash := string(bytes)
	if err != nil {
		passwordHash = "123456bb"
	}
	customers := []model.Customer{
		{Name: "Administration", Email: "admin@babyboo.vn", Password: passwordHash, Role: constants.ROLE_ADMIN, IsActive: true},
	}

	for _, customer := range customers {
		if err := db.Where(model.Customer{Email: customer.Email}).FirstOrCreate(&customer).Error; err != nil {
			log.Println("failed to seed data for customer:", customer.Email, "error:", err)
		}
	}

	products := []model.Product{
		{Name: "Gấu bông BabyBoo 40cm", Price: vnd(250000), Stock: 120, Image: "/images/gau-bong-40.jpg"},
		{Name: "Bộ xếp hình gỗ 100 chi tiết", Price: vnd(320000), SalePrice: vnd(280000), OnSale: true, Stock: 60, Image: "/images/xep-hinh-go.jpg"},
		{Name: "Xe điều khiển từ xa BB-Racer", Price: vnd(450000), Stock: 35, Image: "/images/xe-dieu-khien.jpg"},
		{Name: "Búp bê vải handmade", Price: vnd(200000), Stock: 80, Image: "/images/bup-be-vai.jpg"},
		{Name: "Đàn xylophone mini", Price: vnd(180000), SalePrice: vnd(150000), OnSale: true, Stock: 50, Image: "/images/xylophone.jpg"},
	}
	for _, product := range products {
		product.Slug = slug.Make(product.Name)
		if err := db.Where(model.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed data for product:", product.Name, "error:", err)
		}
	}

	maxDiscount := vnd(150000)
	promotions := []model.Promotion{
		{
			Code:          "BBWELCOME",
			Name:          "Chào mừng khách mới",
			DiscountType:  constants.DISCOUNT_PERCENTAGE,
			DiscountValue: vnd(10),
			MinOrderValue: vnd(200000),
			MaxDiscount:   &maxDiscount,
			StartDate:     parseDate("2025-01-01"),
			EndDate:       parseDate("2026-12-31"),
			IsActive:      true,
			UsageLimit:    1000,
			PerUserLimit:  1,
		},
		{
			Code:          "FREESHIP",
			Name:          "Miễn phí vận chuyển",
			DiscountType:  constants.DISCOUNT_FREE_SHIP,
			DiscountValue: decimal.Zero,
			MinOrderValue: vnd(300000),
			StartDate:     parseDate("2025-01-01"),
			EndDate:       parseDate("2026-12-31"),
			IsActive:      true,
			PerUserLimit:  1,
		},
	}
	for _, promo := range promotions {
		if err := db.Where(model.Promotion{Code: promo.Code}).FirstOrCreate(&promo).Error; err != nil {
			log.Println("failed to seed data for promotion:", promo.Code, "error:", err)
		}
	}
}
