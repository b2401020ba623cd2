package handler

import (
	"babyboo_store/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testPayPal(rate int64) *PayPal {
	return &PayPal{Config: model.PayPalConfig{ExchangeRate: decimal.NewFromInt(rate)}}
}

func TestPayPalUSDValue(t *testing.T) {
	p := testPayPal(24500)

	assert.Equal(t, "19.18", p.USDValue(decimal.NewFromInt(470000)))
	assert.Equal(t, "1.00", p.USDValue(decimal.NewFromInt(24500)))
	assert.Equal(t, "0.00", p.USDValue(decimal.Zero))
}

func TestPayPalUSDValueRounding(t *testing.T) {
	p := testPayPal(25000)

	// 100.000 / 25.000 = 4 chẵn
	assert.Equal(t, "4.00", p.USDValue(decimal.NewFromInt(100000)))
	// 12.345 / 25.000 = 0,4938 → 0,49
	assert.Equal(t, "0.49", p.USDValue(decimal.NewFromInt(12345)))
}
