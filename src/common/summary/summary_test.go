package summary

import (
	"errors"
	"testing"
	"time"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/journeys"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
)

func at(hour, minute int) *types.TimeOfDay {
	return &types.TimeOfDay{Hour: hour, Minute: minute}
}

func record(date string, journey string, charge float64, start, end *types.TimeOfDay, capped types.Capped, line string, confidence types.Confidence) types.JourneyRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	r := types.JourneyRecord{
		Date:         d,
		Journey:      journey,
		ChargeAbs:    charge,
		StartTime:    start,
		EndTime:      end,
		JourneyType:  types.JourneyTypeTubeTrain,
		Capped:       capped,
		InferredLine: line,
		Confidence:   confidence,
	}
	if line == types.LineBus {
		r.JourneyType = types.JourneyTypeBus
	}
	if start != nil {
		hour := start.Hour
		r.Hour = &hour
	}
	if start != nil && end != nil {
		minutes := float64(end.Minutes() - start.Minutes())
		r.DurationMinutes = &minutes
	}
	return r
}

func sampleRecords() []types.JourneyRecord {
	return []types.JourneyRecord{
		record("2024-01-06", "Euston to Bank", 2.80, at(8, 0), at(8, 20), types.CappedNo, "Northern", types.ConfidenceHigh),
		record("2024-01-06", "Bus Journey, Route 134", 1.75, at(18, 5), nil, types.CappedNo, types.LineBus, types.ConfidenceHigh),
		record("2024-01-05", "Bank to Euston", 2.80, at(17, 30), at(17, 55), types.CappedNo, "Northern", types.ConfidenceMedium),
		record("2024-01-05", "Euston to Bank", 0, at(8, 0), at(8, 20), types.CappedYes, "Northern", types.ConfidenceHigh),
		record("2024-01-03", "Euston to Oxford Circus", 3.40, at(8, 10), at(8, 25), types.CappedNo, "Victoria", types.ConfidenceLow),
		record("2024-01-03", "Somewhere to Nowhere", 2.00, nil, nil, types.CappedNo, types.LineUnknown, types.ConfidenceLow),
	}
}

func TestCompute_Empty(t *testing.T) {
	_, err := Compute(nil)
	if !errors.Is(err, journeys.ErrNoJourneys) {
		t.Errorf("expected ErrNoJourneys, got %v", err)
	}
}

func TestCompute_Totals(t *testing.T) {
	s, err := Compute(sampleRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := types.SummaryTotals{
		TotalJourneys:      6,
		TotalSpent:         12.75,
		AverageCost:        2.55,
		AverageSpendPerDay: 4.25,
		DaysCovered:        4,
		CappedJourneys:     1,
		NonCappedJourneys:  5,
		TotalTimeMinutes:   80,
	}
	if s.Summary != expected {
		t.Errorf("expected totals %+v, got %+v", expected, s.Summary)
	}

	if s.LineInferenceNote != types.LineInferenceNote {
		t.Errorf("unexpected note %q", s.LineInferenceNote)
	}
}

func TestCompute_Rankings(t *testing.T) {
	s, err := Compute(sampleRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.TopRoutes) != 5 {
		t.Fatalf("expected 5 top routes, got %d", len(s.TopRoutes))
	}
	if s.TopRoutes[0] != (types.RouteCount{Route: "Euston to Bank", Count: 2}) {
		t.Errorf("unexpected top route %+v", s.TopRoutes[0])
	}
	// single-journey routes tie and are ordered by name
	if s.TopRoutes[1].Route != "Bank to Euston" || s.TopRoutes[2].Route != "Bus Journey, Route 134" {
		t.Errorf("ties should break lexicographically, got %+v", s.TopRoutes)
	}

	expectedOrigins := []types.LocationCount{
		{Location: "Euston", Count: 3},
		{Location: "Bank", Count: 1},
		{Location: "Bus Journey, Route 134", Count: 1},
	}
	for i, want := range expectedOrigins {
		if s.TopOrigins[i] != want {
			t.Errorf("origin %d: expected %+v, got %+v", i, want, s.TopOrigins[i])
		}
	}

	if s.TopDestinations[0] != (types.LocationCount{Location: "Bank", Count: 2}) {
		t.Errorf("unexpected top destination %+v", s.TopDestinations[0])
	}

	expectedLines := []types.LineCount{{Line: "Northern", Count: 3}, {Line: "Victoria", Count: 1}}
	if len(s.TopLines) != len(expectedLines) {
		t.Fatalf("expected %d lines, got %+v", len(expectedLines), s.TopLines)
	}
	for i, want := range expectedLines {
		if s.TopLines[i] != want {
			t.Errorf("line %d: expected %+v, got %+v", i, want, s.TopLines[i])
		}
	}

	if s.JourneyTypes[0] != (types.JourneyTypeCount{Type: types.JourneyTypeTubeTrain, Count: 5}) {
		t.Errorf("unexpected journey types %+v", s.JourneyTypes)
	}

	if s.ConfidenceBreakdown != (types.ConfidenceBreakdown{High: 3, Medium: 1, Low: 2}) {
		t.Errorf("unexpected confidence breakdown %+v", s.ConfidenceBreakdown)
	}
}

func TestCompute_Days(t *testing.T) {
	s, err := Compute(sampleRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct {
		date   string
		amount float64
	}{
		{"2024-01-03", 5.40},
		{"2024-01-05", 2.80},
		{"2024-01-06", 4.55},
	}
	if len(s.DailySpending) != len(expected) {
		t.Fatalf("expected %d days, got %d", len(expected), len(s.DailySpending))
	}
	for i, want := range expected {
		got := s.DailySpending[i]
		if got.Date.Format(time.DateOnly) != want.date || got.Amount != want.amount {
			t.Errorf("day %d: expected %s %.2f, got %s %.2f", i, want.date, want.amount, got.Date.Format(time.DateOnly), got.Amount)
		}
	}

	// three days have two journeys each; the earliest wins
	if s.BusiestDay.Date.Format(time.DateOnly) != "2024-01-03" || s.BusiestDay.JourneyCount != 2 {
		t.Errorf("unexpected busiest day %+v", s.BusiestDay)
	}

	if s.MostExpensiveJourney.Route != "Euston to Oxford Circus" || s.MostExpensiveJourney.Cost != 3.40 {
		t.Errorf("unexpected most expensive journey %+v", s.MostExpensiveJourney)
	}

	expectedHours := []types.HourCount{{Hour: 8, Count: 3}, {Hour: 17, Count: 1}, {Hour: 18, Count: 1}}
	if len(s.HourlyPattern) != len(expectedHours) {
		t.Fatalf("expected %d hours, got %+v", len(expectedHours), s.HourlyPattern)
	}
	for i, want := range expectedHours {
		if s.HourlyPattern[i] != want {
			t.Errorf("hour %d: expected %+v, got %+v", i, want, s.HourlyPattern[i])
		}
	}
}

func TestCompute_CappedFallsBackToCharge(t *testing.T) {
	records := sampleRecords()
	for i := range records {
		records[i].Capped = types.CappedUnknown
	}

	s, err := Compute(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Summary.CappedJourneys != 1 || s.Summary.NonCappedJourneys != 5 {
		t.Errorf("expected charge-based capped counts 1/5, got %d/%d",
			s.Summary.CappedJourneys, s.Summary.NonCappedJourneys)
	}
}

func TestCompute_OrderIndependent(t *testing.T) {
	records := sampleRecords()
	forward, err := Compute(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversed := make([]types.JourneyRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	backward, err := Compute(reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if forward.Summary != backward.Summary {
		t.Errorf("totals depend on order: %+v vs %+v", forward.Summary, backward.Summary)
	}
	for i := range forward.TopRoutes {
		if forward.TopRoutes[i] != backward.TopRoutes[i] {
			t.Errorf("top routes depend on order at %d", i)
		}
	}
}
