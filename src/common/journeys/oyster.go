package journeys

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
)

// Tried in order; the first layout that reads more than half of the non-null
// dates is used for the whole column.
var oysterDateLayouts = []string{
	"2-Jan-2006",
	"2-January-2006",
	"2/1/2006",
	"2006-1-2",
}

// parseDateColumn parses a column of optional date cells with one layout for
// the whole column, falling back to a permissive per-cell parse when no fixed
// layout fits the majority.
func parseDateColumn(cells []*string) []*time.Time {
	nonNull := 0
	for _, cell := range cells {
		if cell != nil {
			nonNull++
		}
	}

	for _, layout := range oysterDateLayouts {
		parsed := make([]*time.Time, len(cells))
		hits := 0
		for i, cell := range cells {
			if cell == nil {
				continue
			}
			if date, ok := utils.ParseDate(*cell, layout); ok {
				parsed[i] = &date
				hits++
			}
		}
		if nonNull > 0 && hits*2 > nonNull {
			return parsed
		}
	}

	parsed := make([]*time.Time, len(cells))
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		if t, err := dateparse.ParseIn(*cell, time.UTC); err == nil {
			date := utils.DateOnly(t)
			parsed[i] = &date
		}
	}
	return parsed
}

// isOysterBus flags a journey as a bus when it mentions "bus journey" or has
// "bus" anywhere in its first ten characters.
func isOysterBus(journey string) bool {
	lower := strings.ToLower(journey)
	if strings.Contains(lower, "bus journey") {
		return true
	}
	head := []rune(lower)
	if len(head) > 10 {
		head = head[:10]
	}
	return strings.Contains(string(head), "bus")
}

func isCappedNote(note string) bool {
	lower := strings.ToLower(note)
	return strings.Contains(lower, "cap") || strings.Contains(lower, "cheaper or free")
}

// normalizeOyster maps an Oyster export: Date (one of several layouts),
// Journey/Action or Journey, Charge, Start Time, End Time and an optional Note.
func normalizeOyster(rs *RowSet) []normalizedRow {
	out := make([]normalizedRow, len(rs.Rows))

	cells := make([]*string, len(rs.Rows))
	for i, row := range rs.Rows {
		if value, ok := row.Value(colDate); ok {
			cells[i] = &value
		}
	}
	dates := parseDateColumn(cells)

	journeyColumn := ""
	switch {
	case rs.HasColumn(colJourneyAction):
		journeyColumn = colJourneyAction
	case rs.HasColumn(colJourney):
		journeyColumn = colJourney
	}

	hasNote := rs.HasColumn(colNote)

	for i, row := range rs.Rows {
		n := &out[i]
		n.date = dates[i]
		n.chargeAbs = absCharge(row, colCharge)
		n.start = timeCell(row, colStartTime)
		n.end = timeCell(row, colEndTime)

		if journeyColumn != "" {
			n.journey, _ = row.Value(journeyColumn)
		}
		n.journeyType = types.JourneyTypeTubeTrain
		if isOysterBus(n.journey) {
			n.journeyType = types.JourneyTypeBus
		}

		n.capped = types.CappedNo
		if hasNote {
			if note, ok := row.Value(colNote); ok && isCappedNote(note) {
				n.capped = types.CappedYes
			}
		}
	}

	return out
}
