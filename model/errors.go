package model

import "errors"

// Lỗi nghiệp vụ của luồng đơn hàng / thanh toán
var (
	ErrEmptyCart         = errors.New("giỏ hàng trống")
	ErrInsufficientStock = errors.New("sản phẩm không đủ hàng tồn kho")
	ErrPriceMismatch     = errors.New("tổng tiền phía client không khớp với server")
	ErrInvalidStatus     = errors.New("trạng thái đơn hàng không hợp lệ")

	ErrPromoNotFound      = errors.New("mã giảm giá không tồn tại hoặc đã hết hạn")
	ErrPromoUsageLimit    = errors.New("mã giảm giá đã hết lượt sử dụng")
	ErrPromoMinimumNotMet = errors.New("đơn hàng chưa đạt giá trị tối thiểu của mã giảm giá")
	ErrPromoAlreadyUsed   = errors.New("bạn đã sử dụng mã giảm giá này rồi")

	ErrPaymentProvider     = errors.New("cổng thanh toán tạm thời không phản hồi, vui lòng thử lại")
	ErrPaymentNotCompleted = errors.New("giao dịch chưa được xác nhận hoàn tất")
	ErrInvalidSignature    = errors.New("chữ ký webhook không hợp lệ")
	ErrShippingUnavailable = errors.New("chưa tính được phí vận chuyển")
)
