package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
	"github.com/jackc/pgx/v5"
)

var journeyColumns = []string{
	"batch_id", "seq", "journey_date", "journey", "charge_abs",
	"start_time", "end_time", "hour", "duration_minutes",
	"journey_type", "capped", "inferred_line", "confidence",
}

func timeText(t *types.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func journeyRow(batchID string, seq int, r types.JourneyRecord) []any {
	return []any{
		batchID,
		seq,
		r.Date,
		r.Journey,
		r.ChargeAbs,
		timeText(r.StartTime),
		timeText(r.EndTime),
		r.Hour,
		r.DurationMinutes,
		string(r.JourneyType),
		utils.NullString(string(r.Capped)),
		r.InferredLine,
		string(r.Confidence),
	}
}

// SaveBatch replaces everything stored for batchID with records, in one
// transaction. Saving the same batch twice leaves a single copy.
func (dc *DataClient) SaveBatch(ctx context.Context, batchID string, format types.ExportFormat, records []types.JourneyRecord) error {
	tx, err := dc.pg.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM journey_batch WHERE id = $1`, batchID); err != nil {
		return fmt.Errorf("clear batch %s: %w", batchID, err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO journey_batch (id, format, journey_count)
		VALUES ($1, $2, $3)
	`, batchID, string(format), len(records)); err != nil {
		return fmt.Errorf("insert batch %s: %w", batchID, err)
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"journey"}, journeyColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return journeyRow(batchID, i, records[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy journeys for %s: %w", batchID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	dc.logger.Debugw("saved batch", "batch_id", batchID, "format", format, "journeys", copied)
	return nil
}

// LoadBatch returns the stored records for batchID, newest first, in the
// order they were saved within a day.
func (dc *DataClient) LoadBatch(ctx context.Context, batchID string) ([]types.JourneyRecord, error) {
	var exists bool
	if err := dc.pg.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM journey_batch WHERE id = $1)
	`, batchID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBatchNotFound
	}

	rows, err := dc.pg.Query(ctx, `
		SELECT journey_date, journey, charge_abs, start_time, end_time, hour,
		       duration_minutes, journey_type, capped, inferred_line, confidence
		FROM journey
		WHERE batch_id = $1
		ORDER BY journey_date DESC, seq
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []types.JourneyRecord
	for rows.Next() {
		var record types.JourneyRecord
		var date time.Time
		var startTime, endTime, capped *string
		var journeyType, line, confText string
		err := rows.Scan(&date, &record.Journey, &record.ChargeAbs, &startTime, &endTime,
			&record.Hour, &record.DurationMinutes, &journeyType, &capped, &line, &confText)
		if err != nil {
			return nil, err
		}
		records = append(records, buildRecord(record, date, startTime, endTime, journeyType, capped, line, confText))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func buildRecord(r types.JourneyRecord, date time.Time, startTime, endTime *string, journeyType string, capped *string, line, confidence string) types.JourneyRecord {
	r.Date = utils.DateOnly(date)
	if startTime != nil {
		r.StartTime = utils.ParseTimeOfDay(*startTime)
	}
	if endTime != nil {
		r.EndTime = utils.ParseTimeOfDay(*endTime)
	}
	r.JourneyType = types.JourneyType(journeyType)
	if capped != nil {
		r.Capped = types.Capped(*capped)
	}
	r.InferredLine = line
	r.Confidence = types.Confidence(confidence)
	return r
}
