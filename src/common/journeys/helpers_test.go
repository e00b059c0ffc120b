package journeys

import (
	"time"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
)

func ptr(t time.Time) *time.Time {
	return &t
}

func judgmentFor(line string) inference.Judgment {
	return inference.Judgment{Line: line, Confidence: types.ConfidenceHigh}
}
