package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/journeys"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
)

// PostUpload accepts a journey history export and queues it for processing.
func (s *APIServer) PostUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Expected a multipart upload with a \"file\" field")
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		return badRequest(c, "Only CSV files are allowed")
	}

	f, err := file.Open()
	if err != nil {
		return internalError(c, "Failed to open upload", err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return internalError(c, "Failed to read upload", err)
	}

	// reject files that are not CSV at all before queueing them
	if _, err := journeys.ReadCSV(bytes.NewReader(body)); err != nil {
		if errors.Is(err, journeys.ErrUnreadableInput) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "Failed to read upload", err)
	}

	batchID := uuid.NewString()
	ctx := c.UserContext()

	status := types.BatchStatusResponse{BatchID: batchID, Status: types.BatchQueued}
	if err := s.Data.SetBatchStatus(ctx, status); err != nil {
		return internalError(c, "Failed to record batch", err)
	}

	if err := s.Queue.Publish(ctx, batchID, file.Filename, body); err != nil {
		s.Logger.Errorw("failed to queue upload", "batch_id", batchID, "error", err)
		status.Status = types.BatchFailed
		status.Message = "could not queue upload"
		if err := s.Data.SetBatchStatus(ctx, status); err != nil {
			s.Logger.Warnw("failed to mark batch failed", "batch_id", batchID, "error", err)
		}
		return internalError(c, "Failed to queue upload", err)
	}

	s.Logger.Infow("queued upload", "batch_id", batchID, "filename", file.Filename, "bytes", len(body))

	return c.Status(http.StatusAccepted).JSON(UploadResponse{
		Status:   string(types.BatchQueued),
		Message:  "Upload accepted",
		Filename: file.Filename,
		BatchID:  batchID,
	})
}
