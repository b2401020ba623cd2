package handler

import (
	"babyboo_store/model"
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// MoMo Service – ví điện tử, luồng redirect + poll + IPN
type MoMo struct {
	Config model.MoMoConfig
	client *http.Client
}

func NewMoMo() *MoMo {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Không tìm thấy file .env, dùng biến môi trường hệ thống...")
	}
	endpoint := os.Getenv("MOMO_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://test-payment.momo.vn"
	}
	return &MoMo{
		Config: model.MoMoConfig{
			PartnerCode: os.Getenv("MOMO_PARTNER_CODE"),
			AccessKey:   os.Getenv("MOMO_ACCESS_KEY"),
			SecretKey:   os.Getenv("MOMO_SECRET_KEY"),
			Endpoint:    endpoint,
			RedirectURL: os.Getenv("APP_URL") + "/payment/momo/return",
			IPNURL:      os.Getenv("API_URL") + "/api/v1/payment/momo-ipn",
		},
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *MoMo) signature(raw string) string {
	h := hmac.New(sha256.New, []byte(m.Config.SecretKey))
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

func (m *MoMo) post(path string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := m.client.Post(m.Config.Endpoint+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return model.ErrPaymentProvider
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return model.ErrPaymentProvider
	}
	return nil
}

// CreatePayment tạo giao dịch, trả về payUrl để client redirect sang ví MoMo
func (m *MoMo) CreatePayment(orderNumber string, amount int64, orderInfo string) (*model.MoMoCreateResponse, error) {
	requestID := uuid.New().String()

	// Thứ tự field theo alphabet, MoMo yêu cầu đúng thứ tự khi ký
	rawSignature := fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=captureWallet",
		m.Config.AccessKey, amount, "", m.Config.IPNURL, orderNumber, orderInfo,
		m.Config.PartnerCode, m.Config.RedirectURL, requestID)

	req := model.MoMoCreateRequest{
		PartnerCode: m.Config.PartnerCode,
		RequestID:   requestID,
		Amount:      amount,
		OrderID:     orderNumber,
		OrderInfo:   orderInfo,
		RedirectURL: m.Config.RedirectURL,
		IPNURL:      m.Config.IPNURL,
		RequestType: "captureWallet",
		ExtraData:   "",
		Lang:        "vi",
		Signature:   m.signature(rawSignature),
	}

	var res model.MoMoCreateResponse
	if err := m.post("/v2/gateway/api/create", req, &res); err != nil {
		return nil, err
	}
	if res.ResultCode != 0 {
		return nil, fmt.Errorf("%w: MoMo resultCode=%d (%s)", model.ErrPaymentProvider, res.ResultCode, res.Message)
	}
	return &res, nil
}

// QueryStatus tra trạng thái giao dịch theo orderNumber, dùng cho polling
func (m *MoMo) QueryStatus(orderNumber, requestID string) (*model.MoMoQueryResponse, error) {
	rawSignature := fmt.Sprintf("accessKey=%s&orderId=%s&partnerCode=%s&requestId=%s",
		m.Config.AccessKey, orderNumber, m.Config.PartnerCode, requestID)

	req := model.MoMoQueryRequest{
		PartnerCode: m.Config.PartnerCode,
		RequestID:   requestID,
		OrderID:     orderNumber,
		Lang:        "vi",
		Signature:   m.signature(rawSignature),
	}

	var res model.MoMoQueryResponse
	if err := m.post("/v2/gateway/api/query", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyIPN xác thực chữ ký payload IPN từ MoMo
func (m *MoMo) VerifyIPN(p model.MoMoIPNPayload) bool {
	rawSignature := fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		m.Config.AccessKey, p.Amount, p.ExtraData, p.Message, p.OrderID, p.OrderInfo,
		p.OrderType, p.PartnerCode, p.PayType, p.RequestID, p.ResponseTime, p.ResultCode, p.TransID)

	expected := m.signature(rawSignature)
	return hmac.Equal([]byte(expected), []byte(p.Signature))
}
