package domain

// NoMatchPolicy controls what happens when a filter selects nothing.
type NoMatchPolicy string

// No-match policies.
const (
	OnNoMatchError NoMatchPolicy = "error"
	OnNoMatchWarn  NoMatchPolicy = "warn"
	OnNoMatchEmpty NoMatchPolicy = "empty"
)

// FilterConfig is the user-declared rule set selecting operations.
//
// A rule list counts as declared when it is present in the configuration,
// even if it is empty.
type FilterConfig struct {
	Include      *FilterRules  `json:"include,omitempty" koanf:"include"`
	Exclude      *FilterRules  `json:"exclude,omitempty" koanf:"exclude"`
	OperationIDs []string      `json:"operationIds,omitempty" koanf:"operationIds"`
	Options      FilterOptions `json:"options" koanf:"options"`
}

// FilterRules lists the three kinds of matching rules.
type FilterRules struct {
	APIs         []APIRef `json:"apis,omitempty" koanf:"apis"`
	Tags         []string `json:"tags,omitempty" koanf:"tags"`
	PathPatterns []string `json:"pathPatterns,omitempty" koanf:"pathPatterns"`
}

// Declared reports whether at least one rule list is present.
func (r *FilterRules) Declared() bool {
	return r != nil && (r.APIs != nil || r.Tags != nil || r.PathPatterns != nil)
}

// APIRef identifies an operation by method and path.
type APIRef struct {
	Method string `json:"method" koanf:"method"`
	Path   string `json:"path" koanf:"path"`
}

// FilterOptions controls matching behavior.
type FilterOptions struct {
	StrictMatch   bool          `json:"strictMatch,omitempty" koanf:"strictMatch"`
	CaseSensitive bool          `json:"caseSensitive,omitempty" koanf:"caseSensitive"`
	OnNoMatch     NoMatchPolicy `json:"onNoMatch,omitempty" koanf:"onNoMatch"`
}

// NoMatchPolicy returns the configured policy, defaulting to warn.
func (o FilterOptions) NoMatchPolicy() NoMatchPolicy {
	if o.OnNoMatch == "" {
		return OnNoMatchWarn
	}
	return o.OnNoMatch
}

// FilterResult is the outcome of a filter run.
type FilterResult struct {
	Matched        int
	Total          int
	FilteredGroups []Group
	SkippedAPIs    []SkippedAPI
	Warnings       []string
}

// Summary returns the serializable audit part of the result.
func (r *FilterResult) Summary() *FilterSummary {
	return &FilterSummary{
		Matched:     r.Matched,
		Total:       r.Total,
		SkippedAPIs: r.SkippedAPIs,
	}
}

// SkippedAPI is one entry of the filter audit trail.
type SkippedAPI struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// FilterSummary is attached to a report when filtering ran.
type FilterSummary struct {
	Matched     int          `json:"matched"`
	Total       int          `json:"total"`
	SkippedAPIs []SkippedAPI `json:"skippedApis,omitempty"`
}
