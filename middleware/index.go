package middleware

import (
	"babyboo_store/constants"
	"babyboo_store/helper"
	"babyboo_store/utils"
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func extractToken(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// AdminOnly yêu cầu token hợp lệ với role admin, dùng sau Protected()
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, _ := helper.GetInfoCustomerFromToken(c)
		if claim.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, 403, "Bạn không có quyền thực hiện thao tác này", nil)
		}
		return c.Next()
	}
}

// OptionalAuth cho phép khách vãng lai đi tiếp, gán customer nếu có token
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", token)

		claim, customer := helper.GetInfoCustomerFromToken(c)
		if claim.CustomerId > 0 && customer.ID > 0 {
			c.Locals("customer", &customer)
		}
		return c.Next()
	}
}
