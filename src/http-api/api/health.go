package api

import (
	"github.com/gofiber/fiber/v2"
)

// GetHealth implements the health check endpoint
func (s *APIServer) GetHealth(c *fiber.Ctx) error {
	network := s.Engine.Network()
	response := HealthResponse{
		Status:   "healthy",
		Version:  s.Version,
		Stations: len(network.Stations()),
		Lines:    len(network.Lines()),
	}
	return c.JSON(response)
}
