package journeys

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
)

var (
	ErrUnreadableInput = errors.New("journey export could not be read")
	ErrNoJourneys      = errors.New("journey export contains no journeys")
)

// RawRow is one exported row keyed by column header. Cells holding a null
// marker are kept as-is; use Value to read them.
type RawRow map[string]string

// Value returns the trimmed cell for column, with ok false when the column is
// missing or the cell is null.
func (r RawRow) Value(column string) (string, bool) {
	raw, exists := r[column]
	if !exists || utils.IsNull(raw) {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

func (r RawRow) allNull() bool {
	for _, raw := range r {
		if !utils.IsNull(raw) {
			return false
		}
	}
	return true
}

type RowSet struct {
	Headers []string
	Rows    []RawRow
}

func (rs *RowSet) HasColumn(name string) bool {
	for _, header := range rs.Headers {
		if header == name {
			return true
		}
	}
	return false
}

// canonicalColumn trims a header and maps known export columns to their
// canonical spelling regardless of case.
func canonicalColumn(name string) string {
	name = strings.TrimSpace(name)
	for _, known := range knownColumns {
		if strings.EqualFold(name, known) {
			return known
		}
	}
	return name
}

// ReadCSV reads an exported journey history. Ragged rows are tolerated: short
// rows leave the trailing columns missing and extra cells are ignored.
func ReadCSV(r io.Reader) (*RowSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrUnreadableInput)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, err)
	}

	rs := &RowSet{Headers: make([]string, 0, len(header))}
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = canonicalColumn(name)
		// duplicate headers: the first column wins
		if seen[name] {
			name = ""
		}
		seen[name] = true
		rs.Headers = append(rs.Headers, name)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, err)
		}

		row := make(RawRow, len(rs.Headers))
		for i, name := range rs.Headers {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		rs.Rows = append(rs.Rows, row)
	}

	return rs, nil
}
