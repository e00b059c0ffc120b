package journeys

import (
	"regexp"
	"strings"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
)

var routeToken = regexp.MustCompile(`(?i)route\s+([\p{L}\p{N}_]+)`)

// NormalizeJourneyText cleans an exported journey descriptor. Annotations in
// square brackets are dropped and bus journeys collapse to "Bus Journey" or
// "Bus Journey, Route N". Applying it twice gives the same result as once.
func NormalizeJourneyText(journey string) string {
	cleaned := utils.StripAnnotations(strings.TrimSpace(journey))

	lower := strings.ToLower(cleaned)
	if strings.Contains(lower, "bus journey") {
		if strings.Contains(lower, "route") {
			if m := routeToken.FindStringSubmatch(cleaned); m != nil {
				return "Bus Journey, Route " + strings.ToUpper(m[1])
			}
		}
		return "Bus Journey"
	}

	return strings.TrimSpace(cleaned)
}
