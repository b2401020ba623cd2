package constants

const (
	ROLE_ADMIN    = "admin"
	ROLE_CUSTOMER = "customer"
)

// Trạng thái đơn hàng
const (
	ORDER_PENDING    = "pending"
	ORDER_PROCESSING = "processing"
	ORDER_SHIPPING   = "shipping"
	ORDER_DELIVERED  = "delivered"
	ORDER_CANCELLED  = "cancelled"
)

// Phương thức thanh toán
const (
	PAYMENT_COD           = "cod"
	PAYMENT_BANK_TRANSFER = "bank_transfer"
	PAYMENT_MOMO          = "momo"
	PAYMENT_PAYPAL        = "paypal"
	PAYMENT_STRIPE        = "stripe"
)

// Trạng thái thanh toán
const (
	PAYMENT_STATUS_PENDING = "pending"
	PAYMENT_STATUS_PAID    = "paid"
	PAYMENT_STATUS_FAILED  = "failed"
)

// Loại giảm giá
const (
	DISCOUNT_PERCENTAGE   = "percentage"
	DISCOUNT_FIXED_AMOUNT = "fixed_amount"
	DISCOUNT_FREE_SHIP    = "free_shipping"
)

// Chính sách giá (VND)
const (
	TAX_RATE_PERCENT        = 10
	FREE_SHIPPING_THRESHOLD = 500000
	FLAT_SHIPPING_FEE       = 30000
	PRICE_TOLERANCE         = 1 // sai lệch tối đa giữa tổng client và server
)

// Tham số mặc định cho gói hàng GHN
const (
	DEFAULT_PARCEL_WEIGHT = 500 // gram
	DEFAULT_PARCEL_LENGTH = 10  // cm
	DEFAULT_PARCEL_WIDTH  = 10
	DEFAULT_PARCEL_HEIGHT = 10
)

const DATA_INPUT_IS_NOT_NUMBER = "Dữ liệu đầu vào không phải là số"
