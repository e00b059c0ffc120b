package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/data"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/summary"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
)

func (s *APIServer) GetBatch(c *fiber.Ctx) error {
	batchID, ok := batchIDParam(c)
	if !ok {
		return badRequest(c, "Batch ID must be a UUID")
	}

	status, err := s.Data.GetBatchStatus(c.UserContext(), batchID)
	if errors.Is(err, data.ErrBatchNotFound) {
		return c.Status(http.StatusNotFound).JSON(NotFoundResponse{Error: "Batch not found"})
	}
	if err != nil {
		return internalError(c, "Failed to retrieve batch status", err)
	}

	return c.JSON(status)
}

// GetWrapped serves the summary for a processed batch, computing and caching
// it on first request.
func (s *APIServer) GetWrapped(c *fiber.Ctx) error {
	batchID, ok := batchIDParam(c)
	if !ok {
		return badRequest(c, "Batch ID must be a UUID")
	}
	ctx := c.UserContext()

	cached, err := s.Data.GetCachedSummary(ctx, batchID)
	if err != nil {
		s.Logger.Warnw("summary cache read failed", "batch_id", batchID, "error", err)
	}
	if cached != nil {
		return c.JSON(cached)
	}

	records, err := s.Data.LoadBatch(ctx, batchID)
	if errors.Is(err, data.ErrBatchNotFound) {
		return s.batchNotReady(c, batchID)
	}
	if err != nil {
		return internalError(c, "Failed to load batch", err)
	}

	wrapped, err := summary.Compute(records)
	if err != nil {
		return internalError(c, "Failed to summarise batch", err)
	}

	if err := s.Data.CacheSummary(ctx, batchID, wrapped); err != nil {
		s.Logger.Warnw("summary cache write failed", "batch_id", batchID, "error", err)
	}

	return c.JSON(wrapped)
}

// batchNotReady answers a summary request for a batch with nothing stored:
// 409 while it is still being processed, 422 when processing failed, 404
// otherwise.
func (s *APIServer) batchNotReady(c *fiber.Ctx, batchID string) error {
	status, err := s.Data.GetBatchStatus(c.UserContext(), batchID)
	if err != nil || status.Status == types.BatchDone {
		return c.Status(http.StatusNotFound).JSON(NotFoundResponse{Error: "Batch not found"})
	}

	if status.Status == types.BatchFailed {
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "Batch failed",
			Message: status.Message,
		})
	}

	return c.Status(http.StatusConflict).JSON(ErrorResponse{
		Error:   "Batch not ready",
		Message: fmt.Sprintf("Batch is %s", status.Status),
	})
}
