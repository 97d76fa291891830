package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by attempt count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByFailures sorts by failure count (most failures first).
	SortByFailures SortField = "failures"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByFailures:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeByRule includes the per-rule analysis.
	IncludeByRule bool

	// IncludeFailures includes the failure groups.
	IncludeFailures bool

	// IncludeRecommendations includes follow-up suggestions.
	IncludeRecommendations bool

	// SortBy specifies how to sort ByRule.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// MessageCap bounds the number of distinct messages kept per
	// failure group. Zero means the default of 5.
	MessageCap int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeByRule:          true,
		IncludeFailures:        true,
		IncludeRecommendations: true,
		SortBy:                 SortByCount,
		SortDesc:               true,
	}
}
