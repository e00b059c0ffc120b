package data

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
	"github.com/redis/go-redis/v9"
)

func statusFields(status types.BatchStatusResponse) map[string]interface{} {
	return map[string]interface{}{
		"status":        string(status.Status),
		"format":        string(status.Format),
		"journey_count": status.JourneyCount,
		"message":       status.Message,
	}
}

func parseStatus(batchID string, fields map[string]string) (*types.BatchStatusResponse, error) {
	if len(fields) == 0 {
		return nil, ErrBatchNotFound
	}

	status := &types.BatchStatusResponse{
		BatchID: batchID,
		Status:  types.BatchStatus(fields["status"]),
		Format:  types.ExportFormat(fields["format"]),
		Message: fields["message"],
	}
	if raw := fields["journey_count"]; raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		status.JourneyCount = count
	}
	return status, nil
}

// SetBatchStatus overwrites the status hash for a batch and resets its expiry.
func (dc *DataClient) SetBatchStatus(ctx context.Context, status types.BatchStatusResponse) error {
	key := utils.BuildBatchKey(status.BatchID)

	pipe := dc.rdb.TxPipeline()
	pipe.HSet(ctx, key, statusFields(status))
	pipe.Expire(ctx, key, dc.statusTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	dc.logger.Debugw("batch status", "batch_id", status.BatchID, "status", status.Status)
	return nil
}

func (dc *DataClient) GetBatchStatus(ctx context.Context, batchID string) (*types.BatchStatusResponse, error) {
	fields, err := dc.rdb.HGetAll(ctx, utils.BuildBatchKey(batchID)).Result()
	if err != nil {
		return nil, err
	}
	return parseStatus(batchID, fields)
}

func (dc *DataClient) CacheSummary(ctx context.Context, batchID string, summary *types.WrappedSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return dc.rdb.Set(ctx, utils.BuildSummaryKey(batchID), b, dc.summaryTTL).Err()
}

// GetCachedSummary returns nil without an error on a cache miss.
func (dc *DataClient) GetCachedSummary(ctx context.Context, batchID string) (*types.WrappedSummary, error) {
	b, err := dc.rdb.Get(ctx, utils.BuildSummaryKey(batchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary types.WrappedSummary
	if err := json.Unmarshal(b, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DropSummary removes a cached summary so the next read recomputes it.
func (dc *DataClient) DropSummary(ctx context.Context, batchID string) error {
	return dc.rdb.Del(ctx, utils.BuildSummaryKey(batchID)).Err()
}
