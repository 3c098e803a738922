package httpapi

import "github.com/gofiber/fiber/v2"

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Mega Schedule API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// handleMe returns the identity resolved from the bearer credential.
func (s *Server) handleMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
