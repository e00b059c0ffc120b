package journeys

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"go.uber.org/zap"
)

type Result struct {
	Format  types.ExportFormat
	Records []types.JourneyRecord
	// rows read from the export that did not make it into Records
	Dropped int
}

// Pipeline turns an exported row-set into the canonical journey table. It
// holds no per-run state, so one Pipeline can serve concurrent runs.
type Pipeline struct {
	engine  *inference.Engine
	workers int
	logger  *zap.SugaredLogger
}

type PipelineOption func(*Pipeline)

// WithWorkers spreads line inference over n goroutines. Output is the same
// for any n.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		p.workers = n
	}
}

func WithPipelineLogger(logger *zap.SugaredLogger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func NewPipeline(engine *inference.Engine, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		engine: engine,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) RunCSV(ctx context.Context, r io.Reader) (*Result, error) {
	rs, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, rs)
}

// Run normalizes rs and infers a line for every journey. Rows are only
// rejected when they are empty or have no readable date; everything else
// degrades to null fields or an ("Unknown", low) judgment. The records come
// back sorted by date, newest first.
func (p *Pipeline) Run(ctx context.Context, rs *RowSet) (*Result, error) {
	kept := filterRows(rs)
	if len(kept.Rows) == 0 {
		return nil, ErrNoJourneys
	}

	format := DetectFormat(kept.Headers)

	var normalized []normalizedRow
	switch format {
	case types.FormatOyster:
		normalized = normalizeOyster(kept)
	default:
		normalized = normalizeContactless(kept)
	}

	dated := make([]normalizedRow, 0, len(normalized))
	for _, row := range normalized {
		if row.date == nil {
			continue
		}
		row.journey = NormalizeJourneyText(row.journey)
		dated = append(dated, row)
	}

	if len(dated) == 0 {
		return nil, fmt.Errorf("%w: no row has a readable date", ErrNoJourneys)
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.After(*dated[j].date)
	})

	texts := make([]string, len(dated))
	for i, row := range dated {
		texts[i] = row.journey
	}

	judgments, err := p.engine.InferAll(ctx, texts, p.workers)
	if err != nil {
		return nil, err
	}

	records := make([]types.JourneyRecord, len(dated))
	for i, row := range dated {
		records[i] = row.record(judgments[i])
	}

	p.logger.Debugw("normalized journey export",
		"format", format,
		"rows", len(rs.Rows),
		"journeys", len(records),
		"undated", len(normalized)-len(dated),
	)

	return &Result{
		Format:  format,
		Records: records,
		Dropped: len(rs.Rows) - len(records),
	}, nil
}

// filterRows drops a blank leading row, fully blank rows, and rows where
// every key column present in the export is blank.
func filterRows(rs *RowSet) *RowSet {
	rows := rs.Rows
	if len(rows) > 0 && rows[0].allNull() {
		rows = rows[1:]
	}

	var keys []string
	for _, column := range keyColumns {
		if rs.HasColumn(column) {
			keys = append(keys, column)
		}
	}

	kept := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		if row.allNull() {
			continue
		}
		if len(keys) > 0 && !hasAny(row, keys) {
			continue
		}
		kept = append(kept, row)
	}

	return &RowSet{Headers: rs.Headers, Rows: kept}
}

func hasAny(row RawRow, columns []string) bool {
	for _, column := range columns {
		if _, ok := row.Value(column); ok {
			return true
		}
	}
	return false
}
