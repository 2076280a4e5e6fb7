// Package auth validates the API key on protected endpoints.
package auth

import "github.com/gofiber/fiber/v2"

// HeaderName carries the API key.
const HeaderName = "X-API-Key"

// New creates the API key middleware. An empty configured key disables the
// check entirely.
func New(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" || c.Get(HeaderName) == apiKey {
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid api key",
		})
	}
}
