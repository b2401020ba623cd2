package handler

import (
	"babyboo_store/constants"
	"babyboo_store/database"
	"babyboo_store/model"
	"babyboo_store/utils"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MarkOrderPaid chuyển đơn sang đã thanh toán. Idempotent: guard is_paid ngay
// trong câu UPDATE nên poll và IPN chạy song song cũng chỉ có đúng một lần
// chuyển trạng thái. Trả về true nếu lần gọi này là lần chuyển.
func MarkOrderPaid(db *gorm.DB, orderID uint, result string) (bool, error) {
	now := time.Now()
	res := db.Model(&model.Order{}).
		Where("id = ? AND is_paid = ?", orderID, false).
		Updates(map[string]interface{}{
			"is_paid":        true,
			"paid_at":        now,
			"payment_status": constants.PAYMENT_STATUS_PAID,
			"payment_result": result,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	// Lần chuyển đầu tiên: gửi email xác nhận + bắn event realtime
	var order model.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err == nil {
		if order.Email != "" {
			utils.SendOrderConfirmationEmail(order.Email, buildOrderEmailData(order))
		}
		PublishOrderEvent(order.ID, "paid")
	}
	return true, nil
}

func markOrderPaymentFailed(db *gorm.DB, orderID uint, result string) {
	// Đơn vẫn pending để khách thanh toán lại, chỉ ghi nhận trạng thái gateway
	db.Model(&model.Order{}).
		Where("id = ? AND is_paid = ?", orderID, false).
		Updates(map[string]interface{}{
			"payment_status": constants.PAYMENT_STATUS_FAILED,
			"payment_result": result,
		})
}

// CreateMomoPayment tạo giao dịch MoMo cho đơn pending, trả về payUrl
func CreateMomoPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePaymentInput)

	var order model.Order
	if err := database.DB.First(&order, input.OrderID).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
	}
	if order.PaymentMethod != constants.PAYMENT_MOMO {
		return utils.ErrorResponse(c, 400, "Đơn hàng không thanh toán qua MoMo", nil)
	}
	if order.IsPaid {
		return utils.ErrorResponse(c, 400, "Đơn hàng đã được thanh toán", nil)
	}

	momo := NewMoMo()
	res, err := momo.CreatePayment(
		order.OrderNumber,
		order.TotalAmount.IntPart(),
		fmt.Sprintf("Thanh toán đơn hàng %s - BabyBoo", order.OrderNumber),
	)
	if err != nil {
		// Lỗi gateway không rollback đơn – đơn vẫn pending, khách thanh toán lại được
		return utils.ErrorResponse(c, 502, "Cổng thanh toán tạm thời không phản hồi, vui lòng thử lại", err)
	}

	database.DB.Model(&order).Update("payment_ref", res.RequestID)

	// Poll server-side, tự dừng khi thành công / hết hạn / IPN về trước
	StartMomoPoll(order.ID, order.OrderNumber, res.RequestID)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"payUrl":    res.PayURL,
		"requestId": res.RequestID,
	})
}

// VerifyMomo kiểm tra trạng thái giao dịch một lần (client poll endpoint này)
func VerifyMomo(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
	}
	if order.IsPaid {
		return utils.SuccessResponse(c, 200, fiber.Map{"isPaid": true, "paidAt": order.PaidAt})
	}

	res, err := NewMoMo().QueryStatus(order.OrderNumber, order.PaymentRef)
	if err != nil {
		return utils.ErrorResponse(c, 502, "Cổng thanh toán tạm thời không phản hồi, vui lòng thử lại", err)
	}

	if res.ResultCode == 0 {
		payload, _ := json.Marshal(res)
		if _, err := MarkOrderPaid(database.DB, order.ID, string(payload)); err != nil {
			return utils.ErrorResponse(c, 500, "Lỗi cập nhật thanh toán", err)
		}
		StopMomoPoll(order.ID)
		return utils.SuccessResponse(c, 200, fiber.Map{"isPaid": true})
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"isPaid":     false,
		"resultCode": res.ResultCode,
		"message":    res.Message,
	})
}

// MomoIPN – webhook server-to-server từ MoMo. Luôn trả response cho provider,
// chữ ký sai thì log và không mutate gì.
func MomoIPN(c *fiber.Ctx) error {
	var payload model.MoMoIPNPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("MoMo IPN: body không hợp lệ: %v", err)
		return c.Status(204).Send(nil)
	}

	momo := NewMoMo()
	if !momo.VerifyIPN(payload) {
		log.Printf("MoMo IPN: chữ ký không hợp lệ cho đơn %s", payload.OrderID)
		return c.Status(204).Send(nil)
	}

	var order model.Order
	if err := database.DB.Where("order_number = ?", payload.OrderID).First(&order).Error; err != nil {
		log.Printf("MoMo IPN: không tìm thấy đơn %s", payload.OrderID)
		return c.Status(204).Send(nil)
	}

	if payload.ResultCode == 0 {
		raw, _ := json.Marshal(payload)
		if _, err := MarkOrderPaid(database.DB, order.ID, string(raw)); err != nil {
			log.Printf("MoMo IPN: lỗi cập nhật đơn %s: %v", payload.OrderID, err)
		}
		StopMomoPoll(order.ID)
	} else {
		raw, _ := json.Marshal(payload)
		markOrderPaymentFailed(database.DB, order.ID, string(raw))
	}

	return c.Status(204).Send(nil)
}

// PaymentStatus trả về góc nhìn đối soát của một đơn
func PaymentStatus(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
		}
		return utils.ErrorResponse(c, 500, "Lỗi truy vấn đơn hàng", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"orderNumber":   order.OrderNumber,
		"paymentMethod": order.PaymentMethod,
		"paymentStatus": order.PaymentStatus,
		"isPaid":        order.IsPaid,
		"paidAt":        order.PaidAt,
	})
}
