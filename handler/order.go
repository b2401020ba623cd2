package handler

import (
	"babyboo_store/constants"
	"babyboo_store/database"
	"babyboo_store/helper"
	"babyboo_store/model"
	"babyboo_store/utils"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// takeStock trả về tồn kho còn lại sau khi trừ. Gọi trên bản ghi đã khóa
// FOR UPDATE nên hai checkout tranh đơn vị cuối được tuần tự hóa: người
// sau đọc tồn đã trừ và nhận ErrInsufficientStock.
func takeStock(stock, quantity int) (int, error) {
	if stock < quantity {
		return stock, model.ErrInsufficientStock
	}
	return stock - quantity, nil
}

// cancelTransition quyết định việc hủy từ trạng thái ĐÃ LƯU của đơn:
// đơn đã hủy là no-op (không hoàn kho lần hai), đơn đã giao không hủy được.
func cancelTransition(status string) (restock bool, err error) {
	switch status {
	case constants.ORDER_CANCELLED:
		return false, nil
	case constants.ORDER_DELIVERED:
		return false, model.ErrInvalidStatus
	}
	return true, nil
}

// CreateOrder tạo đơn hàng + order items + trừ kho trong MỘT transaction.
// Giá luôn tính lại phía server từ catalog, không tin tổng client gửi lên.
func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)
	claim, _ := helper.GetInfoCustomerFromToken(c)

	if len(input.Items) == 0 {
		return utils.ErrorResponse(c, 400, "Giỏ hàng trống", model.ErrEmptyCart)
	}

	var customerID *uint
	if claim.CustomerId > 0 {
		id := claim.CustomerId
		customerID = &id
	}

	db := database.DB
	var created model.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		orderNumber, err := helper.UniqueOrderNumber(tx, now)
		if err != nil {
			return err
		}

		var orderItems []model.OrderItem
		var cartItems []model.CartItem

		for _, it := range input.Items {
			// Lock hàng tồn để 2 checkout cùng lúc không cùng trừ đơn vị cuối
			var product model.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return gorm.ErrRecordNotFound
				}
				return err
			}
			remaining, err := takeStock(product.Stock, it.Quantity)
			if err != nil {
				return err
			}

			unit := product.UnitPrice()
			personalization := ""
			if len(it.Personalization) > 0 {
				raw, _ := json.Marshal(it.Personalization)
				personalization = string(raw)
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:       product.ID,
				Name:            product.Name,
				Image:           product.Image,
				Price:           unit,
				Quantity:        it.Quantity,
				LineTotal:       unit.Mul(decimal.NewFromInt(int64(it.Quantity))),
				Personalization: personalization,
			})
			cartItems = append(cartItems, model.CartItem{Price: unit, Quantity: it.Quantity})

			if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).
				Updates(map[string]interface{}{
					"stock":       remaining,
					"sales_count": gorm.Expr("sales_count + ?", it.Quantity),
				}).Error; err != nil {
				return err
			}
		}

		// Mã giảm giá kiểm tra lại trong cùng transaction
		var promo *model.Promotion
		if input.PromotionCode != "" {
			promo, err = helper.FindActivePromotion(tx, input.PromotionCode)
			if err != nil {
				return err
			}
			priorUses := helper.CountCustomerUses(tx, customerID, input.PromotionCode)
			if err := helper.CheckPromotion(promo, helper.ItemsPrice(cartItems), priorUses); err != nil {
				return err
			}
		}

		breakdown := helper.ComputeTotals(cartItems, promo, input.ShippingFee, input.ShippingFee.IsPositive())

		// Chặn client sửa tổng tiền
		if breakdown.TotalPrice.Sub(input.TotalPrice).Abs().GreaterThan(decimal.NewFromInt(constants.PRICE_TOLERANCE)) {
			return model.ErrPriceMismatch
		}

		addressSnapshot, _ := json.Marshal(input.ShippingAddress)

		order := model.Order{
			OrderNumber:     orderNumber,
			CustomerID:      customerID,
			Status:          constants.ORDER_PENDING,
			SubTotal:        breakdown.ItemsPrice,
			ShippingCost:    breakdown.ShippingPrice,
			Discount:        breakdown.DiscountAmount,
			Tax:             breakdown.TaxPrice,
			ShippingAddress: string(addressSnapshot),
			ShippingService: input.ShippingService,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   constants.PAYMENT_STATUS_PENDING,
			VATInvoice:      input.VATInvoice,
			VATCompanyName:  input.VATCompanyName,
			VATTaxCode:      input.VATTaxCode,
			VATAddress:      input.VATAddress,
			CustomerName:    input.CustomerName,
			Phone:           input.Phone,
			Email:           input.Email,
		}
		if promo != nil {
			order.PromotionID = &promo.ID
			order.PromotionCode = promo.Code
		}
		order.RecomputeTotal()

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		if promo != nil {
			if err := tx.Model(&model.Promotion{}).Where("id = ?", promo.ID).
				Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}

		created = order
		created.Items = orderItems
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.ErrorResponse(c, 404, "Sản phẩm không tồn tại", err)
		case errors.Is(err, model.ErrInsufficientStock):
			return utils.ErrorResponse(c, 400, "Sản phẩm không đủ hàng, vui lòng giảm số lượng", err)
		case errors.Is(err, model.ErrPriceMismatch):
			return utils.ErrorResponse(c, 409, "Giá sản phẩm đã thay đổi, vui lòng tải lại giỏ hàng", err)
		case errors.Is(err, model.ErrPromoNotFound),
			errors.Is(err, model.ErrPromoUsageLimit),
			errors.Is(err, model.ErrPromoMinimumNotMet),
			errors.Is(err, model.ErrPromoAlreadyUsed):
			return utils.ErrorResponse(c, 400, "Mã giảm giá không áp dụng được", err)
		}
		return utils.ErrorResponse(c, 500, "Không thể tạo đơn hàng", err)
	}

	// Chỉ xóa giỏ khi đặt hàng thành công – thất bại thì khách còn giỏ để thử lại
	_ = helper.ClearCart(c.Context(), cartKeyFromCtx(c))

	PublishOrderEvent(created.ID, "created")

	var resp model.OrderResponse
	copier.Copy(&resp, &created)
	return utils.SuccessResponse(c, 201, resp)
}

func GetOrderById(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	claim, _ := helper.GetInfoCustomerFromToken(c)

	var order model.Order
	if err := database.DB.Preload("Items").First(&order, orderId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
	}

	// Chỉ chủ đơn hoặc admin được xem
	isOwner := order.CustomerID != nil && *order.CustomerID == claim.CustomerId
	if !isOwner && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, "Bạn không có quyền xem đơn hàng này", nil)
	}

	var resp model.OrderResponse
	copier.Copy(&resp, &order)
	return utils.SuccessResponse(c, 200, resp)
}

func GetMyOrders(c *fiber.Ctx) error {
	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 || customer.ID == 0 {
		return utils.ErrorResponse(c, 401, "Vui lòng đăng nhập", nil)
	}

	var orders []model.Order
	if err := database.DB.
		Preload("Items").
		Where("customer_id = ?", claim.CustomerId).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi tải đơn hàng", err)
	}

	response := make([]model.OrderResponse, 0, len(orders))
	for _, order := range orders {
		var resp model.OrderResponse
		copier.Copy(&resp, &order)
		response = append(response, resp)
	}
	return utils.SuccessResponse(c, 200, response)
}

// GetAllOrders (admin) – lọc theo status, phân trang
func GetAllOrders(c *fiber.Ctx) error {
	status := c.Query("status")

	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, 400, "Tham số phân trang không hợp lệ", err)
	}
	limit, page := pagination.Resolve()

	query := database.DB.Model(&model.Order{})
	if status != "" {
		if !model.IsValidOrderStatus(status) {
			return utils.ErrorResponse(c, 400, "Trạng thái lọc không hợp lệ", model.ErrInvalidStatus)
		}
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var orders []model.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi tải danh sách đơn hàng", err)
	}

	return utils.SuccessResponse(c, 200, model.ResponseCustom{
		Rows:       orders,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// restoreStockTx hoàn tồn kho + salesCount cho toàn bộ item của đơn.
// Chỉ được gọi đúng một lần cho mỗi đơn (guard bằng trạng thái trước đó).
func restoreStockTx(tx *gorm.DB, items []model.OrderItem) error {
	for _, item := range items {
		if err := tx.Model(&model.Product{}).Where("id = ?", item.ProductID).
			Updates(map[string]interface{}{
				"stock":       gorm.Expr("stock + ?", item.Quantity),
				"sales_count": gorm.Expr("sales_count - ?", item.Quantity),
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// CancelOrderTx hủy đơn và hoàn kho trong một transaction. Kiểm tra trạng thái
// ĐÃ LƯU trước khi mutate nên gọi lặp lại không hoàn kho hai lần.
func CancelOrderTx(db *gorm.DB, orderID uint, reason string) (*model.Order, error) {
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			return err
		}
		restock, err := cancelTransition(order.Status)
		if err != nil {
			return err
		}
		if !restock {
			return nil // đã hủy rồi, no-op
		}

		var items []model.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}
		if err := restoreStockTx(tx, items); err != nil {
			return err
		}

		now := time.Now()
		order.Status = constants.ORDER_CANCELLED
		order.CancelReason = reason
		order.CancelledAt = &now
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus (admin) – máy trạng thái pending → processing → shipping → delivered,
// cancelled đến được từ mọi trạng thái chưa kết thúc
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateOrderStatusInput)

	db := database.DB
	var updated model.Order
	cancelled := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderId).Error; err != nil {
			return err
		}

		if order.Status == input.Status {
			updated = order
			return nil // không đổi gì
		}
		if order.IsTerminal() {
			return model.ErrInvalidStatus
		}

		now := time.Now()
		switch input.Status {
		case constants.ORDER_CANCELLED:
			var items []model.OrderItem
			if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
				return err
			}
			if err := restoreStockTx(tx, items); err != nil {
				return err
			}
			order.Status = constants.ORDER_CANCELLED
			order.CancelReason = input.CancelReason
			order.CancelledAt = &now
			cancelled = true

		case constants.ORDER_DELIVERED:
			order.Status = constants.ORDER_DELIVERED
			order.DeliveredAt = &now
			// COD tất toán khi giao hàng
			if !order.IsPaid {
				order.IsPaid = true
				order.PaidAt = &now
				order.PaymentStatus = constants.PAYMENT_STATUS_PAID
			}

		default:
			order.Status = input.Status
			if input.Status == constants.ORDER_SHIPPING && input.TrackingNumber != "" {
				order.TrackingNumber = input.TrackingNumber
				order.ShippingProvider = "GHN"
			}
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
		}
		if errors.Is(err, model.ErrInvalidStatus) {
			return utils.ErrorResponse(c, 400, "Đơn hàng đã kết thúc, không thể đổi trạng thái", err)
		}
		return utils.ErrorResponse(c, 500, "Cập nhật trạng thái thất bại", err)
	}

	if cancelled && updated.Email != "" {
		utils.SendOrderCancelledEmail(updated.Email, buildOrderEmailData(updated))
	}
	PublishOrderEvent(updated.ID, "status:"+updated.Status)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"id":     updated.ID,
		"status": updated.Status,
		"isPaid": updated.IsPaid,
	})
}

// DeleteOrder (admin) – xóa sửa sai ngoài luồng fulfillment, có hoàn kho
func DeleteOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderId).Error; err != nil {
			return err
		}

		var items []model.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}

		// Đơn đã hủy thì kho đã được hoàn lúc hủy
		if order.Status != constants.ORDER_CANCELLED {
			if err := restoreStockTx(tx, items); err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
		}
		return utils.ErrorResponse(c, 500, "Xóa đơn hàng thất bại", err)
	}
	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Đã xóa đơn hàng"})
}

func buildOrderEmailData(order model.Order) utils.OrderEmailData {
	items := make([]utils.OrderEmailItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, utils.OrderEmailItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal.StringFixed(0),
		})
	}
	data := utils.OrderEmailData{
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		Items:         items,
		TotalAmount:   order.TotalAmount.StringFixed(0),
		PaymentMethod: order.PaymentMethod,
		CancelReason:  order.CancelReason,
	}
	if order.PaidAt != nil {
		data.PaidAt = order.PaidAt.Format("15:04 - 02/01/2006")
	}
	if order.CancelledAt != nil {
		data.CancelledAt = order.CancelledAt.Format("15:04 - 02/01/2006")
	}
	return data
}
