package handler

import (
	"babyboo_store/database"
	"babyboo_store/helper"
	"babyboo_store/model"
	"babyboo_store/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// guestSession: khách vãng lai định danh bằng header X-Session-Id,
// không có header thì rơi về IP. Checkout dùng cùng một cách suy khóa
// để xóa đúng giỏ sau khi đặt hàng thành công.
func guestSession(c *fiber.Ctx) string {
	return c.Get("X-Session-Id", c.IP())
}

func cartKeyFromCtx(c *fiber.Ctx) string {
	claim, _ := helper.GetInfoCustomerFromToken(c)
	return helper.CartKey(claim.CustomerId, guestSession(c))
}

// promoForCart tải lại mã giảm giá của giỏ; mã không còn hợp lệ thì bỏ mã
// thay vì chặn mutation giỏ hàng
func promoForCart(c *fiber.Ctx, cart *model.CartState) *model.Promotion {
	if cart.PromotionCode == "" {
		return nil
	}
	promo, err := helper.FindActivePromotion(database.DB, cart.PromotionCode)
	if err != nil {
		return nil
	}
	claim, _ := helper.GetInfoCustomerFromToken(c)
	var customerID *uint
	if claim.CustomerId > 0 {
		customerID = &claim.CustomerId
	}
	priorUses := helper.CountCustomerUses(database.DB, customerID, promo.Code)
	if err := helper.CheckPromotion(promo, helper.ItemsPrice(cart.Items), priorUses); err != nil {
		return nil
	}
	return promo
}

func saveAndRespondCart(c *fiber.Ctx, key string, cart *model.CartState) error {
	helper.RecomputeCart(cart, promoForCart(c, cart))
	if err := helper.SaveCart(c.Context(), key, cart); err != nil {
		return utils.ErrorResponse(c, 500, "Không lưu được giỏ hàng", err)
	}
	return utils.SuccessResponse(c, 200, cart)
}

func GetCart(c *fiber.Ctx) error {
	key := cartKeyFromCtx(c)
	cart, err := helper.LoadCart(c.Context(), key)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Không đọc được giỏ hàng", err)
	}
	return saveAndRespondCart(c, key, cart)
}

// AddCartItem thêm sản phẩm vào giỏ, snapshot giá/tồn hiện hành từ catalog
func AddCartItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.AddCartItemInput)

	var product model.Product
	if err := database.DB.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, 404, "Sản phẩm không tồn tại", err)
		}
		return utils.ErrorResponse(c, 500, "Lỗi truy vấn sản phẩm", err)
	}

	key := cartKeyFromCtx(c)
	cart, err := helper.LoadCart(c.Context(), key)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Không đọc được giỏ hàng", err)
	}

	quantity := input.Quantity
	for i, item := range cart.Items {
		if item.ProductID == product.ID {
			quantity += item.Quantity
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	if quantity > product.Stock {
		return utils.ErrorResponse(c, 400, "Số lượng vượt quá tồn kho", model.ErrInsufficientStock)
	}

	cart.Items = append(cart.Items, model.CartItem{
		ProductID:       product.ID,
		Name:            product.Name,
		Image:           product.Image,
		Price:           product.UnitPrice(),
		Quantity:        quantity,
		Stock:           product.Stock,
		Personalization: input.Personalization,
	})

	return saveAndRespondCart(c, key, cart)
}

func UpdateCartItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateCartItemInput)

	var product model.Product
	if err := database.DB.First(&product, input.ProductID).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Sản phẩm không tồn tại", err)
	}
	if input.Quantity > product.Stock {
		return utils.ErrorResponse(c, 400, "Số lượng vượt quá tồn kho", model.ErrInsufficientStock)
	}

	key := cartKeyFromCtx(c)
	cart, err := helper.LoadCart(c.Context(), key)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Không đọc được giỏ hàng", err)
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == input.ProductID {
			cart.Items[i].Quantity = input.Quantity
			cart.Items[i].Price = product.UnitPrice()
			cart.Items[i].Stock = product.Stock
			found = true
			break
		}
	}
	if !found {
		return utils.ErrorResponse(c, 404, "Sản phẩm không có trong giỏ", nil)
	}

	return saveAndRespondCart(c, key, cart)
}

func RemoveCartItem(c *fiber.Ctx) error {
	productId := c.Locals("inputId").(int)

	key := cartKeyFromCtx(c)
	cart, err := helper.LoadCart(c.Context(), key)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Không đọc được giỏ hàng", err)
	}

	for i, item := range cart.Items {
		if item.ProductID == uint(productId) {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return saveAndRespondCart(c, key, cart)
		}
	}
	return utils.ErrorResponse(c, 404, "Sản phẩm không có trong giỏ", nil)
}

// UpdateCartShipping lưu địa chỉ, gói dịch vụ GHN và phương thức thanh toán.
// Chưa có báo giá thì giữ nguyên trạng thái phí cũ (ShippingUnavailable không
// phải lỗi cứng).
func UpdateCartShipping(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateCartShippingInput)

	key := cartKeyFromCtx(c)
	cart, err := helper.LoadCart(c.Context(), key)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Không đọc được giỏ hàng", err)
	}

	if input.Address != nil {
		cart.ShippingAddress = input.Address
	}
	if input.Service != "" {
		cart.ShippingService = input.Service
	}
	if input.HasFee {
		cart.ShippingFee = input.Fee
		cart.HasShippingFee = true
	}
	if input.Payment != "" {
		cart.PaymentMethod = input.Payment
	}

	return saveAndRespondCart(c, key, cart)
}

func ApplyCartPromotion(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ApplyPromotionInput)

	key := cartKeyFromCtx(c)
	cart, err := helper.LoadCart(c.Context(), key)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Không đọc được giỏ hàng", err)
	}

	promo, err := helper.FindActivePromotion(database.DB, input.Code)
	if err != nil {
		return utils.ErrorResponse(c, 404, "Mã giảm giá không tồn tại hoặc đã hết hạn", err)
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)
	var customerID *uint
	if claim.CustomerId > 0 {
		customerID = &claim.CustomerId
	}
	priorUses := helper.CountCustomerUses(database.DB, customerID, promo.Code)
	if err := helper.CheckPromotion(promo, helper.ItemsPrice(cart.Items), priorUses); err != nil {
		return utils.ErrorResponse(c, 400, "Mã giảm giá không áp dụng được", err)
	}

	cart.PromotionCode = promo.Code
	return saveAndRespondCart(c, key, cart)
}

func RemoveCartPromotion(c *fiber.Ctx) error {
	key := cartKeyFromCtx(c)
	cart, err := helper.LoadCart(c.Context(), key)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Không đọc được giỏ hàng", err)
	}
	cart.PromotionCode = ""
	return saveAndRespondCart(c, key, cart)
}
