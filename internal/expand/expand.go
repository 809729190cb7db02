// Package expand flattens schemas into ordered field tables.
//
// Expansion does not detect reference cycles. It bounds recursion depth
// instead, so self-referential definitions are truncated at MaxDepth.
package expand

import (
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/parser"
)

// DefaultMaxDepth is the nesting bound used when none is configured.
const DefaultMaxDepth = 10

const indentUnit = "  "

// Expander flattens schemas against a definitions dictionary.
type Expander struct {
	MaxDepth int
}

// New creates an Expander. A negative maxDepth selects DefaultMaxDepth.
func New(maxDepth int) *Expander {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Expander{MaxDepth: maxDepth}
}

// Expand flattens schema starting at depth 0.
func (e *Expander) Expand(schema *domain.Schema, defs map[string]*domain.Schema) []domain.ExpandedField {
	return e.ExpandAt(schema, defs, 0)
}

// ExpandAt flattens schema as if nested depth levels deep. Rows are emitted
// depth-first in property declaration order.
func (e *Expander) ExpandAt(schema *domain.Schema, defs map[string]*domain.Schema, depth int) []domain.ExpandedField {
	if schema == nil || depth > e.MaxDepth {
		return nil
	}

	indent := strings.Repeat(indentUnit, depth)

	if schema.Ref != "" {
		name := parser.RefName(schema.Ref)
		if def, ok := defs[name]; ok && def != nil {
			// A reference does not cost a level.
			return e.ExpandAt(def, defs, depth)
		}
		return []domain.ExpandedField{{
			Field:       indent + "{" + name + "}",
			Type:        "object",
			Description: "Unresolved reference " + name,
			Level:       depth,
		}}
	}

	if len(schema.AllOf) > 0 {
		var fields []domain.ExpandedField
		for _, member := range schema.AllOf {
			fields = append(fields, e.ExpandAt(member, defs, depth)...)
		}
		return fields
	}

	if schema.Type == "object" || len(schema.Properties) > 0 {
		return e.expandProperties(schema, defs, depth, indent)
	}

	if schema.Type == "array" && schema.Items != nil {
		return e.ExpandAt(schema.Items, defs, depth)
	}

	return nil
}

func (e *Expander) expandProperties(schema *domain.Schema, defs map[string]*domain.Schema, depth int, indent string) []domain.ExpandedField {
	var fields []domain.ExpandedField

	for _, p := range schema.Properties {
		prop := p.Schema
		if prop == nil {
			prop = &domain.Schema{}
		}

		required := schema.IsPropertyRequired(p.Name)
		label := p.Name
		if required {
			label += "*"
		}

		info := TypeInfo(prop)
		description := info.Description
		if description == "" {
			description = prop.Description
		}

		fields = append(fields, domain.ExpandedField{
			Field:       indent + label,
			Type:        info.Type,
			Description: description,
			Level:       depth,
			Required:    required,
		})

		switch {
		case isComplex(prop):
			fields = append(fields, e.ExpandAt(prop, defs, depth+1)...)
		case prop.Type == "array" && prop.Items != nil:
			fields = append(fields, e.ExpandAt(prop.Items, defs, depth+1)...)
		}
	}

	return fields
}

// isComplex reports whether a property gets its own nested rows. Untyped
// schemas without a format count as complex when they declare more than one keyword.
func isComplex(s *domain.Schema) bool {
	return s.Type == "object" ||
		len(s.Properties) > 0 ||
		s.Ref != "" ||
		len(s.AllOf) > 0 ||
		(s.Type == "" && s.Format == "" && s.KeyCount() > 1)
}
