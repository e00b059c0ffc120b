package journeys

import (
	"math"
	"time"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
)

const (
	colDate          = "Date"
	colJourney       = "Journey"
	colJourneyAction = "Journey/Action"
	colChargeGBP     = "Charge (GBP)"
	colCharge        = "Charge"
	colTime          = "Time"
	colStartTime     = "Start Time"
	colEndTime       = "End Time"
	colCapped        = "Capped"
	colNote          = "Note"
)

var knownColumns = []string{
	colDate, colJourney, colJourneyAction, colChargeGBP, colCharge,
	colTime, colStartTime, colEndTime, colCapped, colNote,
}

// Columns that identify a journey row; rows with none of them set are noise.
var keyColumns = []string{colDate, colJourney, colJourneyAction}

// normalizedRow is a row after schema normalization and before line
// inference. Its journey text has not been cleaned yet.
type normalizedRow struct {
	date        *time.Time
	journey     string
	chargeAbs   float64
	start       *types.TimeOfDay
	end         *types.TimeOfDay
	journeyType types.JourneyType
	capped      types.Capped
}

func (r normalizedRow) hour() *int {
	if r.start == nil {
		return nil
	}
	hour := r.start.Hour
	return &hour
}

func (r normalizedRow) record(judgment inference.Judgment) types.JourneyRecord {
	return types.JourneyRecord{
		Date:            *r.date,
		Journey:         r.journey,
		ChargeAbs:       r.chargeAbs,
		StartTime:       r.start,
		EndTime:         r.end,
		Hour:            r.hour(),
		DurationMinutes: utils.MinutesBetween(r.start, r.end),
		JourneyType:     r.journeyType,
		Capped:          r.capped,
		InferredLine:    judgment.Line,
		Confidence:      judgment.Confidence,
	}
}

// absCharge reads a charge cell as a non-negative amount. Missing or
// unreadable charges count as zero.
func absCharge(row RawRow, column string) float64 {
	value, ok := row.Value(column)
	if !ok {
		return 0
	}
	amount, ok := utils.ParseAmount(value)
	if !ok {
		return 0
	}
	return math.Abs(amount)
}

func timeCell(row RawRow, column string) *types.TimeOfDay {
	value, ok := row.Value(column)
	if !ok {
		return nil
	}
	return utils.ParseTimeOfDay(value)
}
