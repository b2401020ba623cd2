package validate

import (
	"babyboo_store/model"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func CreatePromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePromotionInput
		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if !input.EndDate.After(input.StartDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Ngày kết thúc phải sau ngày bắt đầu",
			})
		}

		// Save input to context locals
		c.Locals("input", input)

		// Continue to next handler
		return c.Next()
	}
}

func ApplyPromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ApplyPromotionInput
		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.CartTotal.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Giá trị giỏ hàng không được âm",
			})
		}

		// Save input to context locals
		c.Locals("input", input)

		// Continue to next handler
		return c.Next()
	}
}
