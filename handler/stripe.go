package handler

import (
	"babyboo_store/constants"
	"babyboo_store/database"
	"babyboo_store/model"
	"babyboo_store/utils"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Stripe Service – thanh toán thẻ quốc tế qua PaymentIntent.
// VND là zero-decimal currency nên amount gửi Stripe là số đồng nguyên.
type Stripe struct {
	Config model.StripeConfig
	client *http.Client
}

func NewStripe() *Stripe {
	baseURL := os.Getenv("STRIPE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &Stripe{
		Config: model.StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			BaseURL:       baseURL,
		},
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateIntent tạo PaymentIntent, metadata mang id đơn nội bộ để webhook đối soát
func (s *Stripe) CreateIntent(orderID uint, amountVND int64) (*model.StripeIntentResponse, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountVND, 10))
	form.Set("currency", "vnd")
	form.Set("metadata[order_id]", strconv.FormatUint(uint64(orderID), 10))
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequest(http.MethodPost, s.Config.BaseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.Config.SecretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, model.ErrPaymentProvider
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: Stripe status=%d", model.ErrPaymentProvider, resp.StatusCode)
	}

	var res model.StripeIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, model.ErrPaymentProvider
	}
	return &res, nil
}

// VerifyWebhookSignature xác thực header Stripe-Signature (dạng t=...,v1=...)
// theo HMAC-SHA256 trên "t.payload", lệch quá tolerance thì từ chối.
func (s *Stripe) VerifyWebhookSignature(payload []byte, header string, now time.Time, tolerance time.Duration) bool {
	var timestamp string
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if diff := now.Unix() - ts; diff > int64(tolerance.Seconds()) || diff < -int64(tolerance.Seconds()) {
		return false
	}

	h := hmac.New(sha256.New, []byte(s.Config.WebhookSecret))
	h.Write([]byte(timestamp))
	h.Write([]byte("."))
	h.Write(payload)
	expected := hex.EncodeToString(h.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return true
		}
	}
	return false
}

// CreatePaymentIntent tạo PaymentIntent Stripe cho đơn pending, trả về client_secret
func CreatePaymentIntent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePaymentIntentInput)

	var order model.Order
	if err := database.DB.First(&order, input.OrderID).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
	}
	if order.PaymentMethod != constants.PAYMENT_STRIPE {
		return utils.ErrorResponse(c, 400, "Đơn hàng không thanh toán qua Stripe", nil)
	}
	if order.IsPaid {
		return utils.ErrorResponse(c, 400, "Đơn hàng đã được thanh toán", nil)
	}

	stripe := NewStripe()
	res, err := stripe.CreateIntent(order.ID, order.TotalAmount.IntPart())
	if err != nil {
		return utils.ErrorResponse(c, 502, "Cổng thanh toán tạm thời không phản hồi, vui lòng thử lại", err)
	}

	database.DB.Model(&order).Update("payment_ref", res.ID)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"clientSecret": res.ClientSecret,
		"intentId":     res.ID,
	})
}

// StripeWebhook – webhook server-to-server từ Stripe. Chữ ký sai trả 400 và
// không mutate, còn lại luôn trả 200 để Stripe không retry vô hạn.
func StripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()

	stripe := NewStripe()
	if !stripe.VerifyWebhookSignature(payload, c.Get("Stripe-Signature"), time.Now(), 5*time.Minute) {
		log.Println("Stripe webhook: chữ ký không hợp lệ")
		return utils.ErrorResponse(c, 400, "Chữ ký không hợp lệ", model.ErrInvalidSignature)
	}

	var event model.StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("Stripe webhook: body không hợp lệ: %v", err)
		return c.SendStatus(200)
	}

	orderID, err := strconv.ParseUint(event.Data.Object.Metadata["order_id"], 10, 64)
	if err != nil {
		log.Printf("Stripe webhook: thiếu metadata order_id trong event %s", event.ID)
		return c.SendStatus(200)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		raw, _ := json.Marshal(event.Data.Object)
		if _, err := MarkOrderPaid(database.DB, uint(orderID), string(raw)); err != nil {
			log.Printf("Stripe webhook: lỗi cập nhật đơn %d: %v", orderID, err)
		}
	case "payment_intent.payment_failed":
		raw, _ := json.Marshal(event.Data.Object)
		markOrderPaymentFailed(database.DB, uint(orderID), string(raw))
	}

	return c.SendStatus(200)
}
