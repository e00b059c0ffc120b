package types

import openapi_types "github.com/oapi-codegen/runtime/types"

const LineInferenceNote = "Line data is inferred probabilistically due to limitations in available journey history."

type WrappedSummary struct {
	Summary              SummaryTotals       `json:"summary"`
	TopRoutes            []RouteCount        `json:"top_routes"`
	TopOrigins           []LocationCount     `json:"top_origins"`
	TopDestinations      []LocationCount     `json:"top_destinations"`
	JourneyTypes         []JourneyTypeCount  `json:"journey_types"`
	DailySpending        []DailyAmount       `json:"daily_spending"`
	HourlyPattern        []HourCount         `json:"hourly_pattern"`
	MostExpensiveJourney ExpensiveJourney    `json:"most_expensive_journey"`
	BusiestDay           BusiestDay          `json:"busiest_day"`
	TopLines             []LineCount         `json:"top_lines"`
	ConfidenceBreakdown  ConfidenceBreakdown `json:"confidence_breakdown"`
	LineInferenceNote    string              `json:"line_inference_note"`
}

type SummaryTotals struct {
	TotalJourneys      int     `json:"total_journeys"`
	TotalSpent         float64 `json:"total_spent"`
	AverageCost        float64 `json:"average_cost"`
	AverageSpendPerDay float64 `json:"average_spend_per_day"`
	DaysCovered        int     `json:"days_covered"`
	CappedJourneys     int     `json:"capped_journeys"`
	NonCappedJourneys  int     `json:"non_capped_journeys"`
	TotalTimeMinutes   float64 `json:"total_time_minutes"`
}

type RouteCount struct {
	Route string `json:"route"`
	Count int    `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type JourneyTypeCount struct {
	Type  JourneyType `json:"type"`
	Count int         `json:"count"`
}

type DailyAmount struct {
	Date   openapi_types.Date `json:"date"`
	Amount float64            `json:"amount"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type ExpensiveJourney struct {
	Route string             `json:"route"`
	Date  openapi_types.Date `json:"date"`
	Cost  float64            `json:"cost"`
}

type BusiestDay struct {
	Date         openapi_types.Date `json:"date"`
	JourneyCount int                `json:"journey_count"`
}

type LineCount struct {
	Line  string `json:"line"`
	Count int    `json:"count"`
}

type ConfidenceBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}
