// Package converters renders reports to PDF, Word, Confluence and JSON documents.
package converters

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/expand"
	"github.com/GabrielNunesIT/openapi-report/internal/parser"
)

const fallbackMediaType = "application/json"

// endpointView is the render-ready content of one endpoint, shared by all formats.
type endpointView struct {
	Endpoint domain.Endpoint
	// Parameters whose schema has no fields to expand, shown as a simple table.
	Parameters []domain.EndpointParameter
	Request    []fieldTable
	Responses  []responseView
}

// fieldTable is an expanded schema with its caption.
type fieldTable struct {
	Caption string                 `json:"caption"`
	Fields  []domain.ExpandedField `json:"fields"`
}

type responseView struct {
	Status      string      `json:"status"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Model       *fieldTable `json:"model,omitempty"`
}

func buildEndpointView(ep domain.Endpoint, defs map[string]*domain.Schema, exp *expand.Expander) endpointView {
	view := endpointView{Endpoint: ep}

	for _, p := range ep.Parameters {
		fields := exp.Expand(p.Schema, defs)
		if len(fields) == 0 {
			view.Parameters = append(view.Parameters, p)
			continue
		}
		caption := "REQUEST BODY - " + mediaTypeOr(p.MediaType)
		if p.In != domain.InBody {
			caption = "PARAMETER " + p.Name + " - " + locationLabel(p.In)
		}
		view.Request = append(view.Request, fieldTable{Caption: caption, Fields: fields})
	}

	for _, status := range ep.StatusCodes() {
		resp := ep.Responses[status]
		rv := responseView{
			Status:      status,
			Description: resp.Description,
			Type:        "string",
		}
		if resp.Schema != nil {
			rv.Type = expand.TypeInfo(resp.Schema).Type
			if fields := exp.Expand(resp.Schema, defs); len(fields) > 0 {
				rv.Model = &fieldTable{
					Caption: "RESPONSE MODEL - " + mediaTypeOr(resp.MediaType),
					Fields:  fields,
				}
			}
		}
		view.Responses = append(view.Responses, rv)
	}

	return view
}

func expanderOr(exp *expand.Expander) *expand.Expander {
	if exp == nil {
		return expand.New(expand.DefaultMaxDepth)
	}
	return exp
}

// formatMethod returns a styled method string.
func formatMethod(method string) string {
	return strings.ToUpper(method)
}

// parameterType renders the type column of a simple parameter row.
func parameterType(p domain.EndpointParameter) string {
	if p.Schema != nil {
		return expand.TypeInfo(p.Schema).Type
	}
	if p.Type != "" {
		return p.Type
	}
	return "string"
}

var locationLabels = map[string]string{
	domain.InQuery:    "Query",
	domain.InBody:     "Body",
	domain.InPath:     "Path",
	domain.InHeader:   "Header",
	domain.InFormData: "Form Data",
}

func locationLabel(in string) string {
	if label, ok := locationLabels[in]; ok {
		return label
	}
	return in
}

func mediaTypeOr(mediaType string) string {
	if mediaType == "" {
		return fallbackMediaType
	}
	return mediaType
}

func requiredLabel(required bool) string {
	if required {
		return "Yes"
	}
	return "No"
}

// fieldName strips the indentation prefix from an expanded field.
func fieldName(f domain.ExpandedField) string {
	return strings.TrimLeft(f.Field, " ")
}

// usedDefinitions collects the definition names referenced by the group's
// endpoints, following references transitively. The result is sorted.
func usedDefinitions(endpoints []domain.Endpoint, defs map[string]*domain.Schema) []string {
	seen := make(map[string]struct{})

	var visit func(s *domain.Schema)
	visit = func(s *domain.Schema) {
		if s == nil {
			return
		}
		if s.Ref != "" {
			name := parser.RefName(s.Ref)
			if _, ok := seen[name]; ok {
				return
			}
			if def, ok := defs[name]; ok {
				seen[name] = struct{}{}
				visit(def)
			}
			return
		}
		for _, p := range s.Properties {
			visit(p.Schema)
		}
		visit(s.Items)
		for _, list := range [][]*domain.Schema{s.AllOf, s.AnyOf, s.OneOf} {
			for _, member := range list {
				visit(member)
			}
		}
	}

	for _, ep := range endpoints {
		for _, p := range ep.Parameters {
			visit(p.Schema)
		}
		for _, r := range ep.Responses {
			visit(r.Schema)
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes markup and entities from descriptions.
func stripHTML(s string) string {
	result := htmlTag.ReplaceAllString(s, "")
	result = html.UnescapeString(result)
	result = strings.ReplaceAll(result, "\n\n", "\n")
	return strings.TrimSpace(result)
}

// truncate limits s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
