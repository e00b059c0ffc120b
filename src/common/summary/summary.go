// Package summary aggregates a canonical journey table into the "wrapped"
// report served by the API and printed by the CLI.
package summary

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/journeys"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	topRoutes    = 5
	topLocations = 3
	topLines     = 5
)

type counted struct {
	key   string
	count int
}

// rank orders counts by count descending, then key ascending, and keeps at
// most n entries (all of them when n <= 0).
func rank(counts map[string]int, n int) []counted {
	out := make([]counted, 0, len(counts))
	for key, count := range counts {
		out = append(out, counted{key: key, count: count})
	}
	slices.SortFunc(out, func(a, b counted) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func endpoints(journey string) (origin, destination string) {
	parts := strings.Split(journey, " to ")
	return parts[0], parts[len(parts)-1]
}

// Compute builds the wrapped summary for records. The result depends only on
// the multiset of records, not their order, apart from which of several
// equally expensive journeys is reported (the first one wins).
func Compute(records []types.JourneyRecord) (*types.WrappedSummary, error) {
	if len(records) == 0 {
		return nil, journeys.ErrNoJourneys
	}

	var (
		totalSpent   float64
		paidTotal    float64
		paidCount    int
		totalMinutes float64
		hasCapped    bool
	)
	minDate, maxDate := records[0].Date, records[0].Date
	mostExpense := records[0]

	routes := map[string]int{}
	origins := map[string]int{}
	destinations := map[string]int{}
	kinds := map[string]int{}
	lines := map[string]int{}
	hours := map[int]int{}
	dailySpend := map[time.Time]float64{}
	dailyCount := map[time.Time]int{}
	var confidence types.ConfidenceBreakdown

	for _, r := range records {
		totalSpent += r.ChargeAbs
		if r.ChargeAbs > 0 {
			paidTotal += r.ChargeAbs
			paidCount++
		}
		if r.ChargeAbs > mostExpense.ChargeAbs {
			mostExpense = r
		}

		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
		dailySpend[r.Date] += r.ChargeAbs
		dailyCount[r.Date]++

		routes[r.Journey]++
		origin, destination := endpoints(r.Journey)
		origins[origin]++
		destinations[destination]++
		kinds[string(r.JourneyType)]++

		if r.Hour != nil {
			hours[*r.Hour]++
		}
		if r.DurationMinutes != nil {
			totalMinutes += *r.DurationMinutes
		}
		if r.Capped != types.CappedUnknown {
			hasCapped = true
		}

		if r.InferredLine != types.LineBus && r.InferredLine != types.LineUnknown {
			lines[r.InferredLine]++
		}
		switch r.Confidence {
		case types.ConfidenceHigh:
			confidence.High++
		case types.ConfidenceMedium:
			confidence.Medium++
		case types.ConfidenceLow:
			confidence.Low++
		}
	}

	var capped, nonCapped int
	for _, r := range records {
		switch {
		case hasCapped && r.Capped == types.CappedYes:
			capped++
		case hasCapped && r.Capped == types.CappedNo:
			nonCapped++
		case !hasCapped && r.ChargeAbs == 0:
			capped++
		case !hasCapped && r.ChargeAbs > 0:
			nonCapped++
		}
	}

	days := make([]time.Time, 0, len(dailySpend))
	for d := range dailySpend {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	out := &types.WrappedSummary{
		MostExpensiveJourney: types.ExpensiveJourney{
			Route: mostExpense.Journey,
			Date:  openapi_types.Date{Time: mostExpense.Date},
			Cost:  utils.RoundTo(mostExpense.ChargeAbs, 2),
		},
		ConfidenceBreakdown: confidence,
		LineInferenceNote:   types.LineInferenceNote,
	}

	var spendSum float64
	busiest := days[0]
	for _, d := range days {
		spendSum += dailySpend[d]
		out.DailySpending = append(out.DailySpending, types.DailyAmount{
			Date:   openapi_types.Date{Time: d},
			Amount: utils.RoundTo(dailySpend[d], 2),
		})
		// earliest date wins a tie
		if dailyCount[d] > dailyCount[busiest] {
			busiest = d
		}
	}
	out.BusiestDay = types.BusiestDay{
		Date:         openapi_types.Date{Time: busiest},
		JourneyCount: dailyCount[busiest],
	}

	var averageCost float64
	if paidCount > 0 {
		averageCost = paidTotal / float64(paidCount)
	}

	out.Summary = types.SummaryTotals{
		TotalJourneys:      len(records),
		TotalSpent:         utils.RoundTo(totalSpent, 2),
		AverageCost:        utils.RoundTo(averageCost, 2),
		AverageSpendPerDay: utils.RoundTo(spendSum/float64(len(days)), 2),
		DaysCovered:        int(maxDate.Sub(minDate).Hours()/24) + 1,
		CappedJourneys:     capped,
		NonCappedJourneys:  nonCapped,
		TotalTimeMinutes:   utils.RoundTo(totalMinutes, 0),
	}

	for _, c := range rank(routes, topRoutes) {
		out.TopRoutes = append(out.TopRoutes, types.RouteCount{Route: c.key, Count: c.count})
	}
	for _, c := range rank(origins, topLocations) {
		out.TopOrigins = append(out.TopOrigins, types.LocationCount{Location: c.key, Count: c.count})
	}
	for _, c := range rank(destinations, topLocations) {
		out.TopDestinations = append(out.TopDestinations, types.LocationCount{Location: c.key, Count: c.count})
	}
	for _, c := range rank(kinds, 0) {
		out.JourneyTypes = append(out.JourneyTypes, types.JourneyTypeCount{Type: types.JourneyType(c.key), Count: c.count})
	}
	out.TopLines = []types.LineCount{}
	for _, c := range rank(lines, topLines) {
		out.TopLines = append(out.TopLines, types.LineCount{Line: c.key, Count: c.count})
	}

	hourKeys := make([]int, 0, len(hours))
	for h := range hours {
		hourKeys = append(hourKeys, h)
	}
	slices.Sort(hourKeys)
	out.HourlyPattern = make([]types.HourCount, 0, len(hourKeys))
	for _, h := range hourKeys {
		out.HourlyPattern = append(out.HourlyPattern, types.HourCount{Hour: h, Count: hours[h]})
	}

	return out, nil
}
