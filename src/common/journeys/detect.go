package journeys

import (
	"strings"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
)

// DetectFormat classifies an export by its column headers. Unrecognised
// layouts are treated as contactless so the pipeline always has a schema.
func DetectFormat(headers []string) types.ExportFormat {
	columns := make(map[string]bool, len(headers))
	for _, header := range headers {
		columns[strings.ToLower(strings.TrimSpace(header))] = true
	}

	if columns["start time"] && columns["journey/action"] {
		return types.FormatOyster
	}

	if columns["charge (gbp)"] && columns["journey"] && columns["time"] {
		return types.FormatContactless
	}

	if columns["charge"] && columns["journey"] {
		if columns["start time"] {
			return types.FormatOyster
		}
		return types.FormatContactless
	}

	return types.FormatContactless
}
