package handler

import (
	"babyboo_store/model"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testMoMo() *MoMo {
	return &MoMo{
		Config: model.MoMoConfig{
			PartnerCode: "MOMOBB01",
			AccessKey:   "access-key",
			SecretKey:   "secret-key",
		},
	}
}

func signWith(secret, raw string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

func TestMoMoSignature(t *testing.T) {
	m := testMoMo()
	raw := "accessKey=access-key&orderId=BB-250307-0042"
	assert.Equal(t, signWith("secret-key", raw), m.signature(raw))
	// Đổi secret thì chữ ký phải khác
	assert.NotEqual(t, signWith("other", raw), m.signature(raw))
}

func ipnPayload(m *MoMo) model.MoMoIPNPayload {
	p := model.MoMoIPNPayload{
		PartnerCode:  m.Config.PartnerCode,
		OrderID:      "BB-250307-0042",
		RequestID:    "req-1",
		Amount:       470000,
		OrderInfo:    "Thanh toán đơn hàng BB-250307-0042 - BabyBoo",
		OrderType:    "momo_wallet",
		TransID:      123456789,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1741312345000,
		ExtraData:    "",
	}
	raw := fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		m.Config.AccessKey, p.Amount, p.ExtraData, p.Message, p.OrderID, p.OrderInfo,
		p.OrderType, p.PartnerCode, p.PayType, p.RequestID, p.ResponseTime, p.ResultCode, p.TransID)
	p.Signature = signWith(m.Config.SecretKey, raw)
	return p
}

func TestVerifyIPNValid(t *testing.T) {
	m := testMoMo()
	assert.True(t, m.VerifyIPN(ipnPayload(m)))
}

func TestVerifyIPNTamperedAmount(t *testing.T) {
	m := testMoMo()
	p := ipnPayload(m)
	p.Amount = 1
	assert.False(t, m.VerifyIPN(p))
}

func TestVerifyIPNWrongSecret(t *testing.T) {
	m := testMoMo()
	p := ipnPayload(m)

	m.Config.SecretKey = "rotated"
	assert.False(t, m.VerifyIPN(p))
}

func TestVerifyIPNEmptySignature(t *testing.T) {
	m := testMoMo()
	p := ipnPayload(m)
	p.Signature = ""
	assert.False(t, m.VerifyIPN(p))
}
