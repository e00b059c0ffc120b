package inference

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Fallback deterministically picks one of candidates for the station pair.
// The pair "start|end" is hashed with xxHash64 over its UTF-8 bytes and used
// as an index into the lexicographically sorted candidates. The choice is
// reproducible, not a claim that the line is right.
func Fallback(start, end string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	h := xxhash.Sum64String(start + "|" + end)
	return sorted[h%uint64(len(sorted))]
}
