// Package filter selects endpoints of a report through include/exclude rules.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// Audit trail reasons.
const (
	ReasonNotIncluded    = "Not in include list"
	ReasonExcluded       = "In exclude list"
	ReasonNotOperationID = "Not in operation ID list"
)

// Filter applies one FilterConfig to report groups.
type Filter struct {
	config    domain.FilterConfig
	cacheSize int
	match     *matcher
}

// Option configures a Filter.
type Option func(*Filter)

// WithPatternCacheSize sets how many compiled wildcard patterns are cached.
func WithPatternCacheSize(size int) Option {
	return func(f *Filter) {
		f.cacheSize = size
	}
}

// New creates a Filter for cfg. The configuration is expected to have passed ValidateConfig.
func New(cfg domain.FilterConfig, opts ...Option) *Filter {
	f := &Filter{config: cfg}
	for _, opt := range opts {
		opt(f)
	}
	f.match = newMatcher(cfg.Options.CaseSensitive, f.cacheSize)
	return f
}

// Apply filters the groups. Groups left without endpoints are dropped.
// When nothing matches, the no-match policy decides between an ErrNoMatch
// error, a warning in the result, or a silent empty result.
func (f *Filter) Apply(groups []domain.Group) (*domain.FilterResult, error) {
	result := &domain.FilterResult{
		Total:          domain.CountEndpoints(groups),
		FilteredGroups: []domain.Group{},
	}

	for _, group := range groups {
		var kept []domain.Endpoint
		for _, ep := range group.Endpoints {
			if reason, ok := f.decide(ep); !ok {
				result.SkippedAPIs = append(result.SkippedAPIs, domain.SkippedAPI{
					Method: ep.Method,
					Path:   ep.Path,
					Reason: reason,
				})
				continue
			}
			kept = append(kept, ep)
		}
		if len(kept) > 0 {
			result.FilteredGroups = append(result.FilteredGroups, domain.Group{Name: group.Name, Endpoints: kept})
		}
	}

	result.Matched = domain.CountEndpoints(result.FilteredGroups)
	if result.Matched > 0 {
		return result, nil
	}

	message := fmt.Sprintf("No APIs match the filter criteria. Total APIs: %d", result.Total)
	switch f.config.Options.NoMatchPolicy() {
	case domain.OnNoMatchError:
		return nil, fmt.Errorf("%w: total APIs: %d", domain.ErrNoMatch, result.Total)
	case domain.OnNoMatchWarn:
		result.Warnings = append(result.Warnings, message)
	}

	return result, nil
}

// Matches reports whether the endpoint survives the filter.
func (f *Filter) Matches(ep domain.Endpoint) bool {
	_, ok := f.decide(ep)
	return ok
}

// decide returns whether ep is kept and, when it is not, the audit reason.
// Exclude rules win over include rules.
func (f *Filter) decide(ep domain.Endpoint) (string, bool) {
	cfg := f.config

	if cfg.Include.Declared() && !f.matchesRules(ep, cfg.Include) {
		return ReasonNotIncluded, false
	}

	if cfg.Exclude.Declared() && f.matchesRules(ep, cfg.Exclude) {
		return ReasonExcluded, false
	}

	if len(cfg.OperationIDs) > 0 && !f.matchesOperationID(ep) {
		return ReasonNotOperationID, false
	}

	return "", true
}

func (f *Filter) matchesRules(ep domain.Endpoint, rules *domain.FilterRules) bool {
	for _, api := range rules.APIs {
		if f.matchesAPI(ep, api) {
			return true
		}
	}
	for _, tag := range rules.Tags {
		if f.equal(ep.Tag, tag) {
			return true
		}
	}
	for _, pattern := range rules.PathPatterns {
		if f.match.Match(ep.Path, pattern) {
			return true
		}
	}
	return false
}

// Endpoint methods are upper-cased, so the configured method is too.
func (f *Filter) matchesAPI(ep domain.Endpoint, api domain.APIRef) bool {
	if !f.equal(ep.Method, strings.ToUpper(api.Method)) {
		return false
	}
	if f.config.Options.StrictMatch {
		return f.equal(ep.Path, api.Path)
	}
	return f.match.Match(ep.Path, api.Path)
}

func (f *Filter) matchesOperationID(ep domain.Endpoint) bool {
	if ep.OperationID == "" {
		return false
	}
	return slices.ContainsFunc(f.config.OperationIDs, func(id string) bool {
		return f.equal(ep.OperationID, id)
	})
}

func (f *Filter) equal(a, b string) bool {
	if f.config.Options.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
