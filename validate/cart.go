package validate

import (
	"babyboo_store/model"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func AddCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddCartItemInput
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

func UpdateCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCartItemInput
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

func UpdateCartShipping() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCartShippingInput
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

		if input.Fee.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Phí vận chuyển không được âm",
			})
		}

		// Save input to context locals
		c.Locals("input", input)

		// Continue to next handler
		return c.Next()
	}
}
