package converters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/expand"
)

const jsonFormat = "json"

// JSONConverter writes the report contract as JSON, with every schema
// expanded into field tables.
type JSONConverter struct {
	expander *expand.Expander
}

type jsonReport struct {
	Title       string                `json:"title"`
	Version     string                `json:"version"`
	Description string                `json:"description,omitempty"`
	SpecVersion domain.SpecVersion    `json:"specVersion,omitempty"`
	Servers     []domain.Server       `json:"servers,omitempty"`
	Groups      []jsonGroup           `json:"groups"`
	Filter      *domain.FilterSummary `json:"filter,omitempty"`
}

type jsonGroup struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Endpoints   []jsonEndpoint `json:"endpoints"`
}

type jsonEndpoint struct {
	Method      string                     `json:"method"`
	Path        string                     `json:"path"`
	OperationID string                     `json:"operationId,omitempty"`
	Summary     string                     `json:"summary"`
	Description string                     `json:"description"`
	Deprecated  bool                       `json:"deprecated,omitempty"`
	Parameters  []domain.EndpointParameter `json:"parameters,omitempty"`
	Request     []fieldTable               `json:"request,omitempty"`
	Responses   []responseView             `json:"responses,omitempty"`
}

// NewJSONConverter creates a JSON converter expanding schemas with exp.
func NewJSONConverter(exp *expand.Expander) *JSONConverter {
	return &JSONConverter{expander: expanderOr(exp)}
}

// Format returns the output format name.
func (c *JSONConverter) Format() string {
	return jsonFormat
}

// Convert writes the report as indented JSON.
func (c *JSONConverter) Convert(report *domain.Report, output io.Writer) error {
	out := jsonReport{
		Title:       report.Title,
		Version:     report.Version,
		Description: report.Description,
		SpecVersion: report.SpecVersion,
		Servers:     report.Servers,
		Groups:      make([]jsonGroup, 0, len(report.Groups)),
		Filter:      report.Filter,
	}

	for _, group := range report.Groups {
		g := jsonGroup{
			Name:        group.Name,
			Description: report.TagDescription(group.Name),
			Endpoints:   make([]jsonEndpoint, 0, len(group.Endpoints)),
		}
		for _, ep := range group.Endpoints {
			view := buildEndpointView(ep, report.Definitions, c.expander)
			g.Endpoints = append(g.Endpoints, jsonEndpoint{
				Method:      formatMethod(ep.Method),
				Path:        ep.Path,
				OperationID: ep.OperationID,
				Summary:     ep.Summary,
				Description: ep.Description,
				Deprecated:  ep.Deprecated,
				Parameters:  view.Parameters,
				Request:     view.Request,
				Responses:   view.Responses,
			})
		}
		out.Groups = append(out.Groups, g)
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	return nil
}
