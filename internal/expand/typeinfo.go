package expand

import (
	"fmt"
	"slices"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/parser"
)

// meaningfulFormats replace the type in labels instead of qualifying it.
var meaningfulFormats = []string{
	"date-time", "date", "time", "email", "uri", "uuid",
	"password", "binary", "byte", "int32", "int64", "float", "double",
}

// Info is a derived type label and description.
type Info struct {
	Type        string
	Description string
}

// TypeInfo derives the display label of a schema.
func TypeInfo(s *domain.Schema) Info {
	if s == nil {
		return Info{}
	}

	if s.Ref != "" {
		return Info{Type: parser.RefName(s.Ref), Description: s.Description}
	}

	if len(s.Enum) > 0 {
		return Info{Type: "enum", Description: "Allowed values: " + joinValues(s.Enum)}
	}

	if s.Type == "array" {
		if s.Items == nil {
			return Info{Type: "array", Description: s.Description}
		}
		return Info{Type: "array of " + TypeInfo(s.Items).Type, Description: s.Description}
	}

	return Info{Type: Label(s.Type, s.Format), Description: s.Description}
}

// Label renders a scalar type label. Meaningful formats stand alone,
// others are shown as "type (format)". An empty type is "object".
func Label(typ, format string) string {
	if typ == "" {
		typ = "object"
	}
	if format == "" {
		return typ
	}
	if slices.Contains(meaningfulFormats, format) {
		return format
	}
	return fmt.Sprintf("%s (%s)", typ, format)
}

func joinValues(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ", ")
}
