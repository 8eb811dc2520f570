package indexing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_TrimsWhitespace(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, "red shoe", a.Analyze("  red shoe\t\n"))
	assert.Equal(t, "", a.Analyze("   "))
}

func TestAnalyzeDate_ZeroTimeYieldsEmpty(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, "", a.AnalyzeDate(time.Time{}))
}

func TestAnalyzeDate_RendersRFC3339UTC(t *testing.T) {
	a := NewAnalyzer()

	loc := time.FixedZone("CET", 3600)
	v := time.Date(2024, 3, 15, 10, 30, 0, 0, loc)

	assert.Equal(t, "2024-03-15T09:30:00Z", a.AnalyzeDate(v))
}

func TestAnalyzeDecimal(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		in   string
		want string
	}{
		{"12.500", "12.5"},
		{"12.0", "12"},
		{"12.34", "12.34"},
		{" 7.10 ", "7.1"},
		{"0.000", "0"},
		{"-.000", "0"},
		{"100", "100"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.AnalyzeDecimal(tt.in), "input %q", tt.in)
	}
}
