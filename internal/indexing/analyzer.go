package indexing

import (
	"strings"
	"time"
)

// Analyzer normalizes typed values into index tokens. The default
// implementation is used everywhere; the interface exists so tests and
// alternative index schemas can swap the token formats.
type Analyzer interface {
	// Analyze normalizes a plain string value.
	Analyze(value string) string

	// AnalyzeDate normalizes a date or datetime value.
	AnalyzeDate(value time.Time) string

	// AnalyzeDecimal normalizes a decimal value given in string form.
	AnalyzeDecimal(value string) string
}

// defaultAnalyzer trims strings, renders dates as RFC 3339 UTC, and
// canonicalizes decimal strings by stripping redundant characters.
type defaultAnalyzer struct{}

// NewAnalyzer returns the default analyzer.
func NewAnalyzer() Analyzer {
	return defaultAnalyzer{}
}

func (defaultAnalyzer) Analyze(value string) string {
	return strings.TrimSpace(value)
}

func (defaultAnalyzer) AnalyzeDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func (defaultAnalyzer) AnalyzeDecimal(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	// Strip a trailing fraction of zeros ("12.500" -> "12.5", "12.0" -> "12")
	// so equal decimals produce identical tokens.
	if strings.Contains(v, ".") {
		v = strings.TrimRight(v, "0")
		v = strings.TrimSuffix(v, ".")
	}
	if v == "" || v == "-" {
		return "0"
	}
	return v
}
