package helper

import (
	"babyboo_store/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "BBWELCOME", NormalizeCode("  bbWelcome "))
	assert.Equal(t, "FREESHIP", NormalizeCode("freeship"))
}

func TestCheckPromotionUsageLimit(t *testing.T) {
	promo := &model.Promotion{
		MinOrderValue: decimal.Zero,
		UsageLimit:    100,
		UsedCount:     100,
	}
	err := CheckPromotion(promo, decimal.NewFromInt(1000000), 0)
	assert.ErrorIs(t, err, model.ErrPromoUsageLimit)

	// UsageLimit = 0 là không giới hạn
	promo.UsageLimit = 0
	assert.NoError(t, CheckPromotion(promo, decimal.NewFromInt(1000000), 0))
}

func TestCheckPromotionMinimum(t *testing.T) {
	promo := &model.Promotion{
		MinOrderValue: decimal.NewFromInt(300000),
		PerUserLimit:  1,
	}
	err := CheckPromotion(promo, decimal.NewFromInt(299999), 0)
	assert.ErrorIs(t, err, model.ErrPromoMinimumNotMet)

	assert.NoError(t, CheckPromotion(promo, decimal.NewFromInt(300000), 0))
}

func TestCheckPromotionAlreadyUsed(t *testing.T) {
	promo := &model.Promotion{
		MinOrderValue: decimal.Zero,
		PerUserLimit:  1,
	}
	err := CheckPromotion(promo, decimal.NewFromInt(500000), 1)
	assert.ErrorIs(t, err, model.ErrPromoAlreadyUsed)

	// PerUserLimit = 0 thì không chặn dùng lại
	promo.PerUserLimit = 0
	assert.NoError(t, CheckPromotion(promo, decimal.NewFromInt(500000), 1))
}

func TestCheckPromotionPerUserLimitAboveOne(t *testing.T) {
	// PerUserLimit = 2: lần dùng thứ hai vẫn được, lần thứ ba mới chặn
	promo := &model.Promotion{
		MinOrderValue: decimal.Zero,
		PerUserLimit:  2,
	}
	assert.NoError(t, CheckPromotion(promo, decimal.NewFromInt(500000), 0))
	assert.NoError(t, CheckPromotion(promo, decimal.NewFromInt(500000), 1))

	err := CheckPromotion(promo, decimal.NewFromInt(500000), 2)
	assert.ErrorIs(t, err, model.ErrPromoAlreadyUsed)
}

func TestCheckPromotionOrderOfChecks(t *testing.T) {
	// Hết lượt dùng phải báo trước cả khi giỏ chưa đạt tối thiểu
	promo := &model.Promotion{
		MinOrderValue: decimal.NewFromInt(300000),
		UsageLimit:    10,
		UsedCount:     10,
		PerUserLimit:  1,
	}
	err := CheckPromotion(promo, decimal.NewFromInt(100), 1)
	assert.ErrorIs(t, err, model.ErrPromoUsageLimit)
}
