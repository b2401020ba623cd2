package helper

import (
	"babyboo_store/database"
	"babyboo_store/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetInfoCustomerFromToken đọc claim từ token đã parse trong middleware.
// Trả về claim rỗng nếu request là khách vãng lai.
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, model.Customer) {
	var claim model.TokenClaim
	var customer model.Customer

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim, customer
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, customer
	}

	if id, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(id)
	}
	if email, ok := claims["email"].(string); ok {
		claim.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		claim.Role = role
	}

	if claim.CustomerId > 0 {
		database.DB.First(&customer, claim.CustomerId)
	}
	return claim, customer
}
