package helper

import (
	"fmt"
	"math/rand"
	"time"

	"babyboo_store/model"

	"gorm.io/gorm"
)

// GenerateOrderNumber sinh mã đơn dạng BB-YYMMDD-NNNN
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("BB-%s-%04d", now.Format("060102"), rand.Intn(10000))
}

// UniqueOrderNumber sinh mã chưa tồn tại trong DB, thử lại tối đa 5 lần
func UniqueOrderNumber(db *gorm.DB, now time.Time) (string, error) {
	for i := 0; i < 5; i++ {
		number := GenerateOrderNumber(now)
		var count int64
		if err := db.Model(&model.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("không sinh được mã đơn hàng duy nhất")
}
