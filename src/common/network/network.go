// Package network holds the static station/line graph used for line
// inference. A Network is built once at startup and is read-only afterwards,
// so it can be shared between goroutines without locking.
package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrMalformedNetwork = errors.New("malformed station network")

type Network struct {
	stations map[string][]string
	lines    map[string][]string
	aliases  map[string]string
	// lower-cased station name -> canonical key
	folded map[string]string
}

// New copies the document into an immutable Network. Line lists per station
// are sorted so every caller sees them in the same order.
func New(doc types.NetworkDocument) (*Network, error) {
	if doc.Stations == nil {
		return nil, fmt.Errorf("%w: missing \"stations\"", ErrMalformedNetwork)
	}
	if doc.Lines == nil {
		return nil, fmt.Errorf("%w: missing \"lines\"", ErrMalformedNetwork)
	}

	n := &Network{
		stations: make(map[string][]string, len(doc.Stations)),
		lines:    make(map[string][]string, len(doc.Lines)),
		aliases:  make(map[string]string, len(doc.StationAliases)),
		folded:   make(map[string]string, len(doc.Stations)),
	}

	for name, lines := range doc.Stations {
		sorted := slices.Clone(lines)
		slices.Sort(sorted)
		n.stations[name] = slices.Compact(sorted)

		key := strings.ToLower(name)
		// two spellings folding together: keep the lexicographically smallest
		if existing, ok := n.folded[key]; !ok || name < existing {
			n.folded[key] = name
		}
	}

	for name, entry := range doc.Lines {
		n.lines[name] = slices.Clone(entry.Stations)
	}

	for alias, target := range doc.StationAliases {
		n.aliases[alias] = target
	}

	return n, nil
}

func Decode(r io.Reader) (*Network, error) {
	var doc types.NetworkDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedNetwork, err)
	}
	return New(doc)
}

// Load reads the network file at path. A missing or unparseable file is a
// configuration error and callers are expected to stop.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open station network: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadChecked loads and validates the network at path. Validation problems
// fail the load when strict is set and are logged as warnings otherwise.
func LoadChecked(path string, strict bool, logger *zap.SugaredLogger) (*Network, error) {
	n, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := n.Validate(); err != nil {
		if strict {
			return nil, fmt.Errorf("%w: %w", ErrMalformedNetwork, err)
		}
		for _, problem := range multierr.Errors(err) {
			logger.Warnw("station network inconsistency", "problem", problem.Error())
		}
	}

	return n, nil
}

// Validate checks the soft invariants of the document: every station listed
// on a line is a known station, every line a station claims exists, and no two
// station names differ only by case. All violations are returned together.
func (n *Network) Validate() error {
	var err error

	for _, line := range n.Lines() {
		for _, station := range n.lines[line] {
			if _, ok := n.stations[station]; !ok {
				err = multierr.Append(err, fmt.Errorf("line %q lists unknown station %q", line, station))
			}
		}
	}

	for _, station := range n.Stations() {
		for _, line := range n.stations[station] {
			if _, ok := n.lines[line]; !ok {
				err = multierr.Append(err, fmt.Errorf("station %q is served by unknown line %q", station, line))
			}
		}
		if canonical := n.folded[strings.ToLower(station)]; canonical != station {
			err = multierr.Append(err, fmt.Errorf("station %q differs from %q only by case", station, canonical))
		}
	}

	aliases := make([]string, 0, len(n.aliases))
	for alias := range n.aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		if _, ok := n.stations[n.aliases[alias]]; !ok {
			err = multierr.Append(err, fmt.Errorf("alias %q points at unknown station %q", alias, n.aliases[alias]))
		}
	}

	return err
}

// Stations returns every canonical station name in lexicographic order.
func (n *Network) Stations() []string {
	names := make([]string, 0, len(n.stations))
	for name := range n.stations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lines returns every line name in lexicographic order.
func (n *Network) Lines() []string {
	names := make([]string, 0, len(n.lines))
	for name := range n.lines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LineStations returns a copy of the ordered station sequence for line.
func (n *Network) LineStations(line string) ([]string, bool) {
	stations, ok := n.lines[line]
	if !ok {
		return nil, false
	}
	return slices.Clone(stations), true
}
