package handler

import (
	"babyboo_store/constants"
	"babyboo_store/database"
	"babyboo_store/helper"
	"babyboo_store/model"
	"babyboo_store/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ValidatePromotion kiểm tra mã cho một tổng giỏ, KHÔNG tăng used_count –
// chỉ đặt hàng mới tiêu lượt dùng, nên gọi lặp lại thoải mái
func ValidatePromotion(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ApplyPromotionInput)
	claim, _ := helper.GetInfoCustomerFromToken(c)

	promo, err := helper.FindActivePromotion(database.DB, input.Code)
	if err != nil {
		if errors.Is(err, model.ErrPromoNotFound) {
			return utils.ErrorResponse(c, 404, "Mã giảm giá không tồn tại hoặc đã hết hạn", err)
		}
		return utils.ErrorResponse(c, 500, "Lỗi kiểm tra mã giảm giá", err)
	}

	var customerID *uint
	if claim.CustomerId > 0 {
		customerID = &claim.CustomerId
	}
	priorUses := helper.CountCustomerUses(database.DB, customerID, promo.Code)
	if err := helper.CheckPromotion(promo, input.CartTotal, priorUses); err != nil {
		return utils.ErrorResponse(c, 400, "Mã giảm giá không áp dụng được", err)
	}

	// Cùng công thức với Pricing Engine, free_shipping quy theo phí phẳng
	// khi chưa có báo giá GHN
	shipping := helper.ShippingFee(input.CartTotal, decimal.Zero, false)
	discount := helper.PromoDiscount(promo, input.CartTotal, shipping)

	return utils.SuccessResponse(c, 200, model.ApplyPromotionResult{
		Code:           promo.Code,
		DiscountType:   promo.DiscountType,
		DiscountValue:  promo.DiscountValue,
		DiscountAmount: discount,
	})
}

// CreatePromotion (admin)
func CreatePromotion(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePromotionInput)

	// percentage ∈ (0,100], fixed_amount > 0
	switch input.DiscountType {
	case constants.DISCOUNT_PERCENTAGE:
		if !input.DiscountValue.IsPositive() || input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return utils.ErrorResponse(c, 400, "Giá trị phần trăm phải trong khoảng (0,100]", nil)
		}
	case constants.DISCOUNT_FIXED_AMOUNT:
		if !input.DiscountValue.IsPositive() {
			return utils.ErrorResponse(c, 400, "Số tiền giảm phải lớn hơn 0", nil)
		}
	}
	if !input.EndDate.After(input.StartDate) {
		return utils.ErrorResponse(c, 400, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}

	perUserLimit := input.PerUserLimit
	if perUserLimit == 0 {
		perUserLimit = 1
	}

	promo := model.Promotion{
		Code:          helper.NormalizeCode(input.Code),
		Name:          input.Name,
		Description:   input.Description,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MinOrderValue: input.MinOrderValue,
		MaxDiscount:   input.MaxDiscount,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		IsActive:      true,
		UsageLimit:    input.UsageLimit,
		PerUserLimit:  perUserLimit,
	}

	if err := database.DB.Create(&promo).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Không tạo được mã giảm giá", err)
	}
	return utils.SuccessResponse(c, 201, promo)
}

// GetPromotions (admin)
func GetPromotions(c *fiber.Ctx) error {
	var promotions model.Promotions
	if err := database.DB.Order("created_at desc").Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi tải danh sách mã giảm giá", err)
	}
	return utils.SuccessResponse(c, 200, promotions)
}

// DeactivatePromotion (admin)
func DeactivatePromotion(c *fiber.Ctx) error {
	promoId := c.Locals("inputId").(int)

	res := database.DB.Model(&model.Promotion{}).Where("id = ?", promoId).Update("is_active", false)
	if res.Error != nil {
		return utils.ErrorResponse(c, 500, "Không tắt được mã giảm giá", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, 404, "Không tìm thấy mã giảm giá", nil)
	}
	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Đã tắt mã giảm giá"})
}
