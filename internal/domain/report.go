package domain

import (
	"sort"
	"strconv"
)

// DefaultGroupName is the group used for operations without tags.
const DefaultGroupName = "Other"

// Report is the grouped, sorted structure consumed by the renderers.
type Report struct {
	Title       string             `json:"title"`
	Version     string             `json:"version"`
	Description string             `json:"description,omitempty"`
	SpecVersion SpecVersion        `json:"specVersion,omitempty"`
	Servers     []Server           `json:"servers,omitempty"`
	Tags        []Tag              `json:"tags,omitempty"`
	Groups      []Group            `json:"groups"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`
	Filter      *FilterSummary     `json:"filter,omitempty"`
}

// TagDescription returns the catalog description for a tag name.
func (r *Report) TagDescription(name string) string {
	for _, t := range r.Tags {
		if t.Name == name {
			return t.Description
		}
	}
	return ""
}

// EndpointCount returns the number of endpoints over all groups.
func (r *Report) EndpointCount() int {
	return CountEndpoints(r.Groups)
}

// Group is a set of endpoints sharing the same primary tag.
type Group struct {
	Name      string     `json:"name"`
	Endpoints []Endpoint `json:"endpoints"`
}

// CountEndpoints returns the number of endpoints over the given groups.
func CountEndpoints(groups []Group) int {
	total := 0
	for _, g := range groups {
		total += len(g.Endpoints)
	}
	return total
}

// Endpoint is a flattened operation ready for rendering.
type Endpoint struct {
	Method      string                      `json:"method"`
	Path        string                      `json:"path"`
	Tag         string                      `json:"tag"`
	OperationID string                      `json:"operationId,omitempty"`
	Summary     string                      `json:"summary"`
	Description string                      `json:"description"`
	Deprecated  bool                        `json:"deprecated,omitempty"`
	Parameters  []EndpointParameter         `json:"parameters"`
	Responses   map[string]EndpointResponse `json:"responses"`
}

// StatusCodes returns the response keys in display order: numeric codes
// ascending, then the remaining keys lexicographically.
func (e Endpoint) StatusCodes() []string {
	codes := make([]string, 0, len(e.Responses))
	for code := range e.Responses {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		a, errA := strconv.Atoi(codes[i])
		b, errB := strconv.Atoi(codes[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return codes[i] < codes[j]
		}
	})
	return codes
}

// EndpointParameter is a parameter in the legacy shape. The request body is
// represented as a parameter named "body" located in "body".
type EndpointParameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Required    bool    `json:"required,omitempty"`
	Type        string  `json:"type,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
	Description string  `json:"description,omitempty"`
	MediaType   string  `json:"mediaType,omitempty"`
}

// EndpointResponse is a response in the legacy shape.
type EndpointResponse struct {
	Description string  `json:"description"`
	Schema      *Schema `json:"schema,omitempty"`
	MediaType   string  `json:"mediaType,omitempty"`
}

// ExpandedField is one row of an expanded schema table.
type ExpandedField struct {
	Field       string `json:"field"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	Required    bool   `json:"required,omitempty"`
}
