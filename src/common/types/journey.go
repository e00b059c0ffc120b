package types

import (
	"fmt"
	"time"
)

type ExportFormat string

const (
	FormatContactless ExportFormat = "contactless"
	FormatOyster      ExportFormat = "oyster"
)

type JourneyType string

const (
	JourneyTypeBus       JourneyType = "Bus"
	JourneyTypeTubeTrain JourneyType = "Tube/Train"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Capped is "Y", "N" or empty when the export carries no capping information.
// Contactless exports pass their own value through untouched.
type Capped string

const (
	CappedYes     Capped = "Y"
	CappedNo      Capped = "N"
	CappedUnknown Capped = ""
)

const (
	LineBus     = "Bus"
	LineUnknown = "Unknown"
)

type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := time.Parse("15:04", string(text))
	if err != nil {
		return err
	}
	t.Hour, t.Minute = parsed.Hour(), parsed.Minute()
	return nil
}

// JourneyRecord is one canonical journey. Records are built once by the
// pipeline and not modified afterwards.
type JourneyRecord struct {
	Date            time.Time   `json:"date"`
	Journey         string      `json:"journey"`
	ChargeAbs       float64     `json:"charge_abs"`
	StartTime       *TimeOfDay  `json:"start_time,omitempty"`
	EndTime         *TimeOfDay  `json:"end_time,omitempty"`
	Hour            *int        `json:"hour,omitempty"`
	DurationMinutes *float64    `json:"duration_minutes,omitempty"`
	JourneyType     JourneyType `json:"journey_type"`
	Capped          Capped      `json:"capped,omitempty"`
	InferredLine    string      `json:"inferred_line"`
	Confidence      Confidence  `json:"confidence"`
}
