package api

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func internalError(c *fiber.Ctx, message string, err error) error {
	errStr := err.Error()
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "Internal error",
		Message: message,
		Stack:   &errStr,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "Bad request",
		Message: message,
	})
}

// batchIDParam reads and checks the :id route parameter.
func batchIDParam(c *fiber.Ctx) (string, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
