package journeys

import (
	"strings"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
)

const contactlessDateLayout = "2/1/2006"

// normalizeContactless maps a contactless export: Date (day/month/year),
// Journey, Charge (GBP), Time ("HH:MM - HH:MM") and an optional Capped.
func normalizeContactless(rs *RowSet) []normalizedRow {
	out := make([]normalizedRow, 0, len(rs.Rows))

	for _, row := range rs.Rows {
		var n normalizedRow

		if value, ok := row.Value(colDate); ok {
			if date, ok := utils.ParseDate(value, contactlessDateLayout); ok {
				n.date = &date
			}
		}

		n.chargeAbs = absCharge(row, colChargeGBP)

		if value, ok := row.Value(colTime); ok {
			startRaw, endRaw, hasEnd := strings.Cut(value, " - ")
			n.start = utils.ParseTimeOfDay(startRaw)
			if hasEnd {
				n.end = utils.ParseTimeOfDay(endRaw)
			}
		}

		n.journey, _ = row.Value(colJourney)
		n.journeyType = types.JourneyTypeTubeTrain
		if strings.Contains(strings.ToLower(n.journey), "bus journey") {
			n.journeyType = types.JourneyTypeBus
		}

		if value, ok := row.Value(colCapped); ok {
			n.capped = types.Capped(value)
		}

		out = append(out, n)
	}

	return out
}
