// Package processor runs uploaded journey exports through the pipeline and
// stores the result against their batch.
package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/journeys"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"go.uber.org/zap"
)

type Store interface {
	SetBatchStatus(ctx context.Context, status types.BatchStatusResponse) error
	SaveBatch(ctx context.Context, batchID string, format types.ExportFormat, records []types.JourneyRecord) error
	DropSummary(ctx context.Context, batchID string) error
}

type Processor struct {
	pipeline *journeys.Pipeline
	store    Store
	logger   *zap.SugaredLogger
}

func New(pipeline *journeys.Pipeline, store Store, logger *zap.SugaredLogger) *Processor {
	return &Processor{pipeline: pipeline, store: store, logger: logger}
}

// isBatchFatal reports whether err comes from the export itself, so retrying
// the same bytes cannot succeed.
func isBatchFatal(err error) bool {
	return errors.Is(err, journeys.ErrNoJourneys) || errors.Is(err, journeys.ErrUnreadableInput)
}

// Process handles one uploaded export. Problems with the export are recorded
// in the batch status and swallowed; infrastructure errors are returned so
// the delivery can be retried. On the final attempt those errors are also
// recorded as a failed status.
func (p *Processor) Process(ctx context.Context, batchID string, body []byte, final bool) error {
	if batchID == "" {
		p.logger.Warn("dropping upload without a batch id")
		return nil
	}

	err := p.process(ctx, batchID, body)
	if err == nil || !final {
		return err
	}

	status := types.BatchStatusResponse{BatchID: batchID, Status: types.BatchFailed, Message: err.Error()}
	if serr := p.store.SetBatchStatus(ctx, status); serr != nil {
		p.logger.Warnw("failed to mark batch failed", "batch_id", batchID, "error", serr)
	}
	return err
}

func (p *Processor) process(ctx context.Context, batchID string, body []byte) error {
	status := types.BatchStatusResponse{BatchID: batchID, Status: types.BatchProcessing}
	if err := p.store.SetBatchStatus(ctx, status); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	result, err := p.pipeline.RunCSV(ctx, bytes.NewReader(body))
	if err != nil {
		if !isBatchFatal(err) {
			return err
		}
		p.logger.Infow("rejected upload", "batch_id", batchID, "error", err)
		status.Status = types.BatchFailed
		status.Message = err.Error()
		return p.store.SetBatchStatus(ctx, status)
	}

	if err := p.store.SaveBatch(ctx, batchID, result.Format, result.Records); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	if err := p.store.DropSummary(ctx, batchID); err != nil {
		p.logger.Warnw("failed to drop stale summary", "batch_id", batchID, "error", err)
	}

	p.logger.Infow("processed upload",
		"batch_id", batchID,
		"format", result.Format,
		"journeys", len(result.Records),
		"dropped", result.Dropped,
	)

	status.Status = types.BatchDone
	status.Format = result.Format
	status.JourneyCount = len(result.Records)
	return p.store.SetBatchStatus(ctx, status)
}
