package network

import (
	"slices"
	"strings"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
)

// Resolve maps a free-text station name onto a canonical station key. Names
// that match nothing come back cleaned but otherwise unchanged; looking them up
// simply finds no lines.
func (n *Network) Resolve(name string) string {
	station := strings.TrimSpace(utils.StripAnnotations(strings.TrimSpace(name)))

	if target, ok := n.aliases[station]; ok {
		station = target
	}

	if key, ok := n.folded[strings.ToLower(station)]; ok {
		return key
	}

	base, _, _ := strings.Cut(station, "(")
	if key, ok := n.folded[strings.ToLower(strings.TrimSpace(base))]; ok {
		return key
	}

	return station
}

// LinesFor returns the lines serving station in lexicographic order, or nil
// when the station does not resolve.
func (n *Network) LinesFor(station string) []string {
	lines, ok := n.stations[n.Resolve(station)]
	if !ok {
		return nil
	}
	return slices.Clone(lines)
}

// DistanceOnLine counts the stops between start and end along line's station
// sequence. ok is false when the line is unknown or either station is not on
// it. The count is a stop-distance proxy, not a physical length.
func (n *Network) DistanceOnLine(start, end, line string) (distance int, ok bool) {
	sequence, exists := n.lines[line]
	if !exists {
		return 0, false
	}

	resolvedStart := n.Resolve(start)
	resolvedEnd := n.Resolve(end)

	startIdx, endIdx := -1, -1
	for i, station := range sequence {
		if strings.EqualFold(station, resolvedStart) {
			startIdx = i
		}
		if strings.EqualFold(station, resolvedEnd) {
			endIdx = i
		}
	}

	if startIdx < 0 || endIdx < 0 {
		return 0, false
	}

	distance = endIdx - startIdx
	if distance < 0 {
		distance = -distance
	}
	return distance, true
}
