package validate

import (
	"babyboo_store/model"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func ShippingQuote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ShippingQuoteInput
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

		// Save input to context locals
		c.Locals("input", input)

		// Continue to next handler
		return c.Next()
	}
}
