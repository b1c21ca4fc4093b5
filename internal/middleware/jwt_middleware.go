package middleware

import (
	"errors"
	"log"
	"strings"

	"journal/internal/models"
	"journal/internal/services"

	"github.com/gofiber/fiber/v2"
)

// userContextKey is where AuthRequired stores the authenticated user for
// downstream handlers.
const userContextKey = "currentUser"

// AuthRequired is a Fiber middleware that checks for a valid bearer token
// and resolves it to the full user record, so handlers can run ownership
// checks without touching the token themselves.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.Authenticate(parts[1])
		if err != nil {
			log.Printf("Bearer token rejected: %v", err)
			message := "Invalid token"
			if errors.Is(err, services.ErrTokenExpired) {
				message = "Token has expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": message,
			})
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// UserFromContext returns the authenticated user stored by AuthRequired, or
// nil when the route is not behind the middleware.
func UserFromContext(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userContextKey).(*models.User)
	return user
}
