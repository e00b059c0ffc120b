// Package inference guesses which line a tap-in/tap-out journey used.
//
// Exports only record the entry and exit stations, never the route, so every
// answer carries a confidence label:
//
//   - high: exactly one line serves both stations (or the journey is a bus)
//   - medium: several lines serve both, and one is clearly shorter
//   - low: anything else, including journeys that need an interchange
//
// Ties are broken by Fallback, which is stable across runs and processes for
// the same network.
package inference

import (
	"context"
	"slices"
	"strings"

	"github.com/bluele/gcache"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/network"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Judgment struct {
	Line       string           `json:"inferred_line"`
	Confidence types.Confidence `json:"confidence"`
}

var (
	busJudgment     = Judgment{Line: types.LineBus, Confidence: types.ConfidenceHigh}
	unknownJudgment = Judgment{Line: types.LineUnknown, Confidence: types.ConfidenceLow}
)

type Engine struct {
	network *network.Network
	memo    gcache.Cache
	logger  *zap.SugaredLogger
}

type Option func(*Engine)

// WithMemo keeps up to size recent station-pair judgments in an LRU. Results
// are a pure function of the pair and the network, so the memo never changes
// an answer.
func WithMemo(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.memo = gcache.New(size).LRU().Build()
		}
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(n *network.Network, opts ...Option) *Engine {
	e := &Engine{
		network: n,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Network() *network.Network {
	return e.network
}

// IsBusText reports whether a journey or station string describes a bus
// journey rather than a rail one.
func IsBusText(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "bus journey") ||
		(strings.HasPrefix(lower, "bus") && strings.Contains(lower, "route"))
}

// ExtractStations splits "A to B" on the first " to ". ok is false when the
// separator is missing or either side is blank.
func ExtractStations(journey string) (start, end string, ok bool) {
	start, end, found := strings.Cut(journey, " to ")
	if !found {
		return "", "", false
	}
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

// InferJourneyText runs inference for a normalized journey descriptor such as
// "Bank to Waterloo" or "Bus Journey, Route 134".
func (e *Engine) InferJourneyText(journey string) Judgment {
	if IsBusText(journey) {
		return busJudgment
	}

	start, end, ok := ExtractStations(journey)
	if !ok {
		return unknownJudgment
	}
	return e.InferJourney(start, end)
}

// InferJourney judges the line for a single journey between two raw station
// strings. It never fails; the worst case is ("Unknown", low).
func (e *Engine) InferJourney(start, end string) Judgment {
	if IsBusText(start) || IsBusText(end) {
		return busJudgment
	}
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return unknownJudgment
	}

	if e.memo == nil {
		return e.infer(start, end)
	}

	key := start + "\x00" + end
	if cached, err := e.memo.Get(key); err == nil {
		return cached.(Judgment)
	}
	judgment := e.infer(start, end)
	_ = e.memo.Set(key, judgment)
	return judgment
}

func (e *Engine) infer(start, end string) Judgment {
	startLines := e.network.LinesFor(start)
	endLines := e.network.LinesFor(end)

	if len(startLines) == 0 || len(endLines) == 0 {
		e.logger.Debugw("unresolved station", "start", start, "end", end,
			"start_lines", len(startLines), "end_lines", len(endLines))
		return unknownJudgment
	}

	common := intersect(startLines, endLines)

	switch len(common) {
	case 1:
		return Judgment{Line: common[0], Confidence: types.ConfidenceHigh}
	case 0:
		// needs an interchange; only the origin's lines are known to be involved
		return Judgment{Line: startLines[0], Confidence: types.ConfidenceLow}
	default:
		return e.pickAmongCommon(start, end, common)
	}
}

// pickAmongCommon prefers the line with the fewest stops between the two
// stations, but only when it beats every other measurable line by more than
// one stop.
func (e *Engine) pickAmongCommon(start, end string, common []string) Judgment {
	best := ""
	minDist, secondMin := -1, -1

	distances := make(map[string]int, len(common))
	for _, line := range common {
		if d, ok := e.network.DistanceOnLine(start, end, line); ok {
			distances[line] = d
		}
	}

	// common is sorted, so the first line reaching the minimum wins ties
	for _, line := range common {
		d, ok := distances[line]
		if !ok {
			continue
		}
		if minDist < 0 || d < minDist {
			minDist = d
			best = line
		}
	}

	for _, d := range distances {
		if d > minDist && (secondMin < 0 || d < secondMin) {
			secondMin = d
		}
	}

	if best != "" && secondMin >= 0 && minDist < secondMin-1 {
		return Judgment{Line: best, Confidence: types.ConfidenceMedium}
	}

	return Judgment{Line: Fallback(start, end, common), Confidence: types.ConfidenceLow}
}

// InferAll judges every journey descriptor. With workers > 1 the journeys are
// split across goroutines; each result depends only on its own journey, so
// the output is identical to the sequential run.
func (e *Engine) InferAll(ctx context.Context, journeys []string, workers int) ([]Judgment, error) {
	results := make([]Judgment, len(journeys))

	if workers <= 1 {
		for i, journey := range journeys {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = e.InferJourneyText(journey)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (len(journeys) + workers - 1) / workers
	for lo := 0; lo < len(journeys); lo += chunk {
		hi := min(lo+chunk, len(journeys))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = e.InferJourneyText(journeys[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func intersect(a, b []string) []string {
	var out []string
	for _, line := range a {
		if slices.Contains(b, line) {
			out = append(out, line)
		}
	}
	return out
}
