package handler

import (
	"babyboo_store/model"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testStripe() *Stripe {
	return &Stripe{Config: model.StripeConfig{WebhookSecret: "whsec_test"}}
}

func stripeHeader(secret string, payload []byte, ts time.Time) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.", ts.Unix())
	h.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(h.Sum(nil)))
}

func TestStripeWebhookSignatureValid(t *testing.T) {
	s := testStripe()
	now := time.Now()
	payload := []byte(`{"type":"payment_intent.succeeded"}`)

	header := stripeHeader("whsec_test", payload, now)
	assert.True(t, s.VerifyWebhookSignature(payload, header, now, 5*time.Minute))
}

func TestStripeWebhookSignatureTamperedPayload(t *testing.T) {
	s := testStripe()
	now := time.Now()
	header := stripeHeader("whsec_test", []byte(`{"a":1}`), now)

	assert.False(t, s.VerifyWebhookSignature([]byte(`{"a":2}`), header, now, 5*time.Minute))
}

func TestStripeWebhookSignatureWrongSecret(t *testing.T) {
	s := testStripe()
	now := time.Now()
	payload := []byte(`{}`)
	header := stripeHeader("whsec_other", payload, now)

	assert.False(t, s.VerifyWebhookSignature(payload, header, now, 5*time.Minute))
}

func TestStripeWebhookSignatureExpiredTimestamp(t *testing.T) {
	s := testStripe()
	now := time.Now()
	payload := []byte(`{}`)

	// Timestamp cũ hơn tolerance → từ chối dù chữ ký đúng
	old := now.Add(-10 * time.Minute)
	header := stripeHeader("whsec_test", payload, old)
	assert.False(t, s.VerifyWebhookSignature(payload, header, now, 5*time.Minute))
}

func TestStripeWebhookSignatureMalformedHeader(t *testing.T) {
	s := testStripe()
	payload := []byte(`{}`)

	assert.False(t, s.VerifyWebhookSignature(payload, "", time.Now(), 5*time.Minute))
	assert.False(t, s.VerifyWebhookSignature(payload, "t=abc,v1=zzz", time.Now(), 5*time.Minute))
	assert.False(t, s.VerifyWebhookSignature(payload, "v1=deadbeef", time.Now(), 5*time.Minute))
}

func TestStripeWebhookSignatureMultipleV1(t *testing.T) {
	s := testStripe()
	now := time.Now()
	payload := []byte(`{"id":"evt_1"}`)

	valid := stripeHeader("whsec_test", payload, now)
	// Stripe có thể gửi nhiều v1 khi rotate secret, chỉ cần một cái khớp
	header := fmt.Sprintf("t=%d,v1=%s,%s", now.Unix(), "deadbeef", valid[len(fmt.Sprintf("t=%d,", now.Unix())):])
	assert.True(t, s.VerifyWebhookSignature(payload, header, now, 5*time.Minute))
}
