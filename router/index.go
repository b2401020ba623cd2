package router

import (
	"babyboo_store/handler"
	"babyboo_store/middleware"
	"babyboo_store/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	order := v1.Group("/orders", logger.New())
	order.Post("/", middleware.OptionalAuth(), validate.CreateOrder(), handler.CreateOrder)
	order.Get("/myorders", middleware.Protected(), handler.GetMyOrders)
	order.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetAllOrders)
	order.Get("/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.GetOrderById)
	order.Put("/:orderId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	order.Delete("/:orderId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), handler.DeleteOrder)

	cart := v1.Group("/cart", logger.New())
	cart.Get("/", middleware.OptionalAuth(), handler.GetCart)
	cart.Post("/items", middleware.OptionalAuth(), validate.AddCartItem(), handler.AddCartItem)
	cart.Put("/items", middleware.OptionalAuth(), validate.UpdateCartItem(), handler.UpdateCartItem)
	cart.Delete("/items/:productId", middleware.OptionalAuth(), validate.GetById("productId"), handler.RemoveCartItem)
	cart.Put("/shipping", middleware.OptionalAuth(), validate.UpdateCartShipping(), handler.UpdateCartShipping)
	cart.Post("/promotion", middleware.OptionalAuth(), validate.ApplyPromotion(), handler.ApplyCartPromotion)
	cart.Delete("/promotion", middleware.OptionalAuth(), handler.RemoveCartPromotion)

	promotion := v1.Group("/promotions", logger.New())
	promotion.Post("/validate", middleware.OptionalAuth(), validate.ApplyPromotion(), handler.ValidatePromotion)
	promotion.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetPromotions)
	promotion.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreatePromotion(), handler.CreatePromotion)
	promotion.Patch("/:promotionId/deactivate", middleware.Protected(), middleware.AdminOnly(), validate.GetById("promotionId"), handler.DeactivatePromotion)

	shipping := v1.Group("/shipping", logger.New())
	shipping.Get("/provinces", handler.GetProvinces)
	shipping.Get("/districts", handler.GetDistricts)
	shipping.Get("/wards", handler.GetWards)
	shipping.Get("/services", handler.GetShippingServices)
	shipping.Post("/quote", validate.ShippingQuote(), handler.GetShippingQuote)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/create-momo-payment", middleware.OptionalAuth(), validate.CreatePayment(), handler.CreateMomoPayment)
	payment.Get("/verify-momo/:orderId", middleware.OptionalAuth(), validate.GetById("orderId"), handler.VerifyMomo)
	payment.Post("/momo-ipn", handler.MomoIPN)
	payment.Post("/paypal/order", middleware.OptionalAuth(), validate.CreatePayPalOrder(), handler.CreatePayPalOrder)
	payment.Post("/paypal/capture", middleware.OptionalAuth(), validate.CapturePayPalOrder(), handler.CapturePayPalOrder)
	payment.Post("/create-payment-intent", middleware.OptionalAuth(), validate.CreatePaymentIntent(), handler.CreatePaymentIntent)
	payment.Post("/webhook", handler.StripeWebhook)
	payment.Get("/status/:orderId", middleware.OptionalAuth(), validate.GetById("orderId"), handler.PaymentStatus)

	v1.Get("/ws/orders", middleware.Protected(), middleware.AdminOnly(), websocket.New(handler.OrderFeedSocket))
}
