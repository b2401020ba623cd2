package handler

import (
	"babyboo_store/constants"
	"babyboo_store/database"
	"babyboo_store/model"
	"babyboo_store/utils"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PayPal Service – thanh toán quốc tế, quy đổi VND sang USD theo tỉ giá cấu hình
type PayPal struct {
	Config model.PayPalConfig
	client *http.Client
}

func NewPayPal() *PayPal {
	baseURL := os.Getenv("PAYPAL_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api-m.sandbox.paypal.com"
	}

	rate := decimal.NewFromInt(24500)
	if raw := os.Getenv("PAYPAL_EXCHANGE_RATE"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil && parsed.IsPositive() {
			rate = parsed
		}
	}

	return &PayPal{
		Config: model.PayPalConfig{
			ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
			Secret:       os.Getenv("PAYPAL_SECRET"),
			BaseURL:      baseURL,
			ExchangeRate: rate,
		},
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PayPal) getAccessToken() (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequest(http.MethodPost, p.Config.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.Config.ClientID, p.Config.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", model.ErrPaymentProvider
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("%w: PayPal token status=%d", model.ErrPaymentProvider, resp.StatusCode)
	}

	var token model.PayPalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", model.ErrPaymentProvider
	}
	return token.AccessToken, nil
}

func (p *PayPal) post(path, accessToken string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.Config.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return model.ErrPaymentProvider
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: PayPal status=%d", model.ErrPaymentProvider, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return model.ErrPaymentProvider
	}
	return nil
}

// USDValue quy đổi số tiền VND sang chuỗi USD 2 chữ số thập phân
func (p *PayPal) USDValue(vnd decimal.Decimal) string {
	return vnd.Div(p.Config.ExchangeRate).Round(2).StringFixed(2)
}

// CreateOrder tạo order PayPal intent CAPTURE, custom_id mang mã đơn nội bộ
func (p *PayPal) CreateOrder(orderNumber string, totalVND decimal.Decimal) (*model.PayPalOrderResponse, error) {
	accessToken, err := p.getAccessToken()
	if err != nil {
		return nil, err
	}

	req := model.PayPalCreateOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []model.PayPalPurchaseUnit{
			{
				ReferenceID: orderNumber,
				CustomID:    orderNumber,
				Amount: model.PayPalAmount{
					CurrencyCode: "USD",
					Value:        p.USDValue(totalVND),
				},
			},
		},
	}

	var res model.PayPalOrderResponse
	if err := p.post("/v2/checkout/orders", accessToken, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Capture chốt giao dịch sau khi khách approve trên PayPal
func (p *PayPal) Capture(paypalOrderID string) (*model.PayPalOrderResponse, error) {
	accessToken, err := p.getAccessToken()
	if err != nil {
		return nil, err
	}

	var res model.PayPalOrderResponse
	if err := p.post("/v2/checkout/orders/"+paypalOrderID+"/capture", accessToken, struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreatePayPalOrder tạo order PayPal cho đơn pending, client nhận id để render nút approve
func CreatePayPalOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePayPalOrderInput)

	var order model.Order
	if err := database.DB.First(&order, input.OrderID).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
	}
	if order.PaymentMethod != constants.PAYMENT_PAYPAL {
		return utils.ErrorResponse(c, 400, "Đơn hàng không thanh toán qua PayPal", nil)
	}
	if order.IsPaid {
		return utils.ErrorResponse(c, 400, "Đơn hàng đã được thanh toán", nil)
	}

	paypal := NewPayPal()
	res, err := paypal.CreateOrder(order.OrderNumber, order.TotalAmount)
	if err != nil {
		return utils.ErrorResponse(c, 502, "Cổng thanh toán tạm thời không phản hồi, vui lòng thử lại", err)
	}

	database.DB.Model(&order).Update("payment_ref", res.ID)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"paypalOrderId": res.ID,
		"status":        res.Status,
	})
}

// CapturePayPalOrder chốt giao dịch PayPal và đánh dấu đơn đã thanh toán
func CapturePayPalOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CapturePayPalOrderInput)

	var order model.Order
	if err := database.DB.First(&order, input.OrderID).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
	}
	if order.IsPaid {
		return utils.SuccessResponse(c, 200, fiber.Map{"isPaid": true, "paidAt": order.PaidAt})
	}

	paypal := NewPayPal()
	res, err := paypal.Capture(input.PayPalOrderID)
	if err != nil {
		return utils.ErrorResponse(c, 502, "Cổng thanh toán tạm thời không phản hồi, vui lòng thử lại", err)
	}

	if res.Status != "COMPLETED" {
		log.Printf("PayPal capture đơn %s trạng thái %s", order.OrderNumber, res.Status)
		return utils.ErrorResponse(c, 402, "Giao dịch PayPal chưa hoàn tất", model.ErrPaymentNotCompleted)
	}

	payload, _ := json.Marshal(res)
	if _, err := MarkOrderPaid(database.DB, order.ID, string(payload)); err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi cập nhật thanh toán", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"isPaid": true})
}
