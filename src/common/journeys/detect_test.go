package journeys

import (
	"testing"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected types.ExportFormat
	}{
		{
			name:     "oyster export",
			headers:  []string{"Date", "Journey/Action", "Charge", "Note", "Start Time", "End Time"},
			expected: types.FormatOyster,
		},
		{
			name:     "contactless export",
			headers:  []string{"Date", "Journey", "Charge (GBP)", "Time", "Capped"},
			expected: types.FormatContactless,
		},
		{
			name:     "oyster with plain journey column",
			headers:  []string{"Date", "Journey", "Charge", "Start Time", "End Time"},
			expected: types.FormatOyster,
		},
		{
			name:     "generic charge without start time",
			headers:  []string{"Date", "Journey", "Charge"},
			expected: types.FormatContactless,
		},
		{
			name:     "case and whitespace",
			headers:  []string{" date", "JOURNEY/ACTION ", "start time"},
			expected: types.FormatOyster,
		},
		{
			name:     "unrecognised",
			headers:  []string{"foo", "bar"},
			expected: types.FormatContactless,
		},
		{
			name:     "no headers",
			headers:  nil,
			expected: types.FormatContactless,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.headers); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
