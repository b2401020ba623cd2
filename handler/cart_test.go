package handler

import (
	"babyboo_store/helper"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestCartKeyUsesSessionHeader(t *testing.T) {
	app := fiber.New()
	rctx := &fasthttp.RequestCtx{}
	rctx.Request.Header.Set("X-Session-Id", "sess-guest-1")
	c := app.AcquireCtx(rctx)
	defer app.ReleaseCtx(c)

	assert.Equal(t, helper.CartKey(0, "sess-guest-1"), cartKeyFromCtx(c))
}

func TestCartKeyFallsBackToIP(t *testing.T) {
	// Không có header thì giỏ theo IP – checkout phải suy ra cùng khóa này
	// để xóa đúng giỏ sau khi đặt hàng
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	assert.NotEmpty(t, guestSession(c))
	assert.Equal(t, helper.CartKey(0, c.IP()), cartKeyFromCtx(c))
}
