package handlers

import "github.com/gofiber/fiber/v2"

// CallerID returns the caller identity resolved by the identity middleware,
// or "" when the request carried none.
func CallerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
