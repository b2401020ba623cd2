package main

import (
	"babyboo_store/config"
	"babyboo_store/database"
	"babyboo_store/handler"
	"babyboo_store/helper"
	"babyboo_store/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Session-Id",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	helper.StartPromotionSweep()
	defer helper.StopPromotionSweep()
	handler.StartOrderExpiryScheduler()
	defer handler.StopOrderExpiryScheduler()
	defer handler.StopAllMomoPolls()

	router.SetupRoutes(app)

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8002")))
}
