// Package handlers contains the HTTP route handler functions for the Ruff
// Ryder scoring API. Each handler corresponds to one API endpoint and is
// responsible for reading the request, calling into the scoring engine or the
// database, and writing a response.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and
// reachable — no database queries, no side effects. Used by load balancers
// and container orchestrators to decide whether to send traffic here.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
