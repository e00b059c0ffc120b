package api

import (
	"github.com/gofiber/fiber/v2"
)

// GetInfer judges a single station pair: /infer?start=Bank&end=Waterloo
func (s *APIServer) GetInfer(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return badRequest(c, "Both start and end query parameters are required")
	}

	judgment := s.Engine.InferJourney(start, end)

	return c.JSON(InferenceResponse{
		Start:        start,
		End:          end,
		InferredLine: judgment.Line,
		Confidence:   judgment.Confidence,
	})
}
