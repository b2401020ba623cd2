package helper

import (
	"babyboo_store/database"
	"babyboo_store/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const cartTTL = 7 * 24 * time.Hour

// CartKey: giỏ theo khách đã đăng nhập hoặc theo session id của khách vãng lai
func CartKey(customerID uint, sessionID string) string {
	if customerID > 0 {
		return fmt.Sprintf("cart:customer:%d", customerID)
	}
	return fmt.Sprintf("cart:guest:%s", sessionID)
}

// LoadCart đọc CartState từ Redis, trả về giỏ rỗng nếu chưa có
func LoadCart(ctx context.Context, key string) (*model.CartState, error) {
	raw, err := database.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return &model.CartState{
			Items:          []model.CartItem{},
			ItemsPrice:     decimal.Zero,
			ShippingPrice:  decimal.Zero,
			TaxPrice:       decimal.Zero,
			DiscountAmount: decimal.Zero,
			TotalPrice:     decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart model.CartState
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func SaveCart(ctx context.Context, key string, cart *model.CartState) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, key, raw, cartTTL).Err()
}

func ClearCart(ctx context.Context, key string) error {
	return database.Redis.Del(ctx, key).Err()
}

// RecomputeCart chạy lại Pricing Engine và ghi giá dẫn xuất vào giỏ.
// promo = nil nghĩa là không có mã (hoặc mã không còn hợp lệ → bỏ mã).
func RecomputeCart(cart *model.CartState, promo *model.Promotion) {
	if promo == nil {
		cart.PromotionCode = ""
	}
	breakdown := ComputeTotals(cart.Items, promo, cart.ShippingFee, cart.HasShippingFee)
	cart.ItemsPrice = breakdown.ItemsPrice
	cart.ShippingPrice = breakdown.ShippingPrice
	cart.TaxPrice = breakdown.TaxPrice
	cart.DiscountAmount = breakdown.DiscountAmount
	cart.TotalPrice = breakdown.TotalPrice
}
