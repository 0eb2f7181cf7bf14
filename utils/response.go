package utils

import "github.com/gofiber/fiber/v2"

// Success writes the standard response envelope with success set to true.
func Success(c *fiber.Ctx, data interface{}, message string, code int) error {
	return c.Status(code).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Error writes the standard response envelope with success set to false and
// a nil data field.
func Error(c *fiber.Ctx, message string, code int) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}
