package helper

import (
	"babyboo_store/constants"
	"babyboo_store/database"
	"babyboo_store/model"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FindActivePromotion tra mã đang active và còn trong thời hạn. Mã không tồn
// tại, hết hạn, chưa bắt đầu hay đã tắt đều trả về ErrPromoNotFound như nhau.
func FindActivePromotion(db *gorm.DB, code string) (*model.Promotion, error) {
	var promo model.Promotion
	now := time.Now()
	err := db.Where("code = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
		NormalizeCode(code), true, now, now).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPromoNotFound
		}
		return nil, err
	}
	return &promo, nil
}

// CheckPromotion kiểm tra điều kiện áp mã trên dữ liệu đã tải. Hàm thuần,
// không side effect – used_count chỉ tăng lúc đặt hàng, không tăng ở đây.
// priorUses là số đơn trước đó của khách mang mã này, so với PerUserLimit.
func CheckPromotion(promo *model.Promotion, cartTotal decimal.Decimal, priorUses int64) error {
	if promo.UsageLimit > 0 && promo.UsedCount >= promo.UsageLimit {
		return model.ErrPromoUsageLimit
	}
	if cartTotal.LessThan(promo.MinOrderValue) {
		return model.ErrPromoMinimumNotMet
	}
	if promo.PerUserLimit > 0 && priorUses >= int64(promo.PerUserLimit) {
		return model.ErrPromoAlreadyUsed
	}
	return nil
}

// CountCustomerUses đếm best-effort qua các đơn cũ mang đúng mã này,
// bỏ qua đơn đã hủy. Khách vãng lai luôn là 0.
func CountCustomerUses(db *gorm.DB, customerID *uint, code string) int64 {
	if customerID == nil {
		return 0
	}
	var count int64
	db.Model(&model.Order{}).
		Where("customer_id = ? AND promotion_code = ? AND status != ?", *customerID, NormalizeCode(code), constants.ORDER_CANCELLED).
		Count(&count)
	return count
}

var promotionCron *cron.Cron

// StartPromotionSweep tắt các mã đã qua ngày kết thúc, chạy 00:05 hằng ngày
func StartPromotionSweep() {
	promotionCron = cron.New(cron.WithLocation(time.FixedZone("ICT", 7*3600)))
	promotionCron.AddFunc("5 0 * * *", func() {
		res := database.DB.Model(&model.Promotion{}).
			Where("is_active = ? AND end_date < ?", true, time.Now()).
			Update("is_active", false)
		if res.Error != nil {
			log.Printf("[CRON] Lỗi quét mã giảm giá hết hạn: %v", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("[CRON] Đã tắt %d mã giảm giá hết hạn", res.RowsAffected)
		}
	})
	promotionCron.Start()
}

func StopPromotionSweep() {
	if promotionCron != nil {
		promotionCron.Stop()
	}
}
