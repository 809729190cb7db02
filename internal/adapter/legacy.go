// Package adapter reshapes a normalized spec into the grouped report consumed
// by the renderers.
package adapter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// LegacyRefPrefix is the pointer prefix used by re-encoded schema references.
const LegacyRefPrefix = "#/definitions/"

// ToLegacy groups operations by primary tag and sorts groups and endpoints.
func ToLegacy(spec *domain.APISpec) *domain.Report {
	byTag := make(map[string][]domain.Endpoint)

	for _, op := range spec.Operations {
		endpoint := convertOperation(op)
		byTag[endpoint.Tag] = append(byTag[endpoint.Tag], endpoint)
	}

	groups := make([]domain.Group, 0, len(byTag))
	for name, endpoints := range byTag {
		slices.SortStableFunc(endpoints, func(a, b domain.Endpoint) int {
			return cmp.Compare(a.Path, b.Path)
		})
		groups = append(groups, domain.Group{Name: name, Endpoints: endpoints})
	}
	slices.SortFunc(groups, func(a, b domain.Group) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return &domain.Report{
		Title:       spec.Info.Title,
		Version:     spec.Info.Version,
		Description: spec.Info.Description,
		SpecVersion: spec.Version,
		Servers:     spec.Servers,
		Tags:        spec.Tags,
		Groups:      groups,
		Definitions: ConvertDefinitions(spec.Schemas),
	}
}

func convertOperation(op domain.Operation) domain.Endpoint {
	tag := op.PrimaryTag()
	if tag == "" {
		tag = domain.DefaultGroupName
	}

	params := make([]domain.EndpointParameter, 0, len(op.Parameters)+1)
	for _, p := range op.Parameters {
		params = append(params, domain.EndpointParameter{
			Name:        p.Name,
			In:          mapLocation(p.In),
			Required:    p.Required,
			Type:        schemaType(p.Schema),
			Schema:      ConvertSchema(p.Schema),
			Description: p.Description,
		})
	}

	if rb := op.RequestBody; rb != nil {
		params = append(params, domain.EndpointParameter{
			Name:        "body",
			In:          domain.InBody,
			Required:    rb.Required,
			Type:        schemaType(rb.Schema),
			Schema:      ConvertSchema(rb.Schema),
			Description: rb.Description,
			MediaType:   rb.MediaType,
		})
	}

	responses := make(map[string]domain.EndpointResponse, len(op.Responses))
	for _, r := range op.Responses {
		responses[r.StatusCode] = domain.EndpointResponse{
			Description: r.Description,
			Schema:      ConvertSchema(r.Schema),
			MediaType:   r.MediaType,
		}
	}

	summary := op.Summary
	if summary == "" {
		summary = DefaultSummary(op.Method, op.Path)
	}
	description := op.Description
	if description == "" {
		description = DefaultDescription(op.Method, op.Path, op.OperationID)
	}

	return domain.Endpoint{
		Method:      op.Method,
		Path:        op.Path,
		Tag:         tag,
		OperationID: op.OperationID,
		Summary:     summary,
		Description: description,
		Deprecated:  op.Deprecated,
		Parameters:  params,
		Responses:   responses,
	}
}

var methodVerbs = map[string]string{
	"GET":    "Get",
	"POST":   "Add",
	"PUT":    "Update",
	"DELETE": "Delete",
	"PATCH":  "Partially Update",
}

// DefaultSummary synthesizes "{Verb} {lastPathSegment}" for operations without a summary.
func DefaultSummary(method, path string) string {
	method = strings.ToUpper(method)

	last := "API"
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) > 0 {
		last = segments[len(segments)-1]
	}

	verb, ok := methodVerbs[method]
	if !ok {
		verb = method
	}
	return verb + " " + last
}

// DefaultDescription synthesizes a description for operations without one.
func DefaultDescription(method, path, operationID string) string {
	if operationID != "" {
		return "Operation ID: " + operationID
	}
	return "Operation for " + strings.ToUpper(method) + " " + path
}

// Cookie parameters are rendered as headers.
func mapLocation(in string) string {
	if in == domain.InCookie {
		return domain.InHeader
	}
	return in
}

func schemaType(s *domain.Schema) string {
	if s == nil {
		return ""
	}
	return s.Type
}
