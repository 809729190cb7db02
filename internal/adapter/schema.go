package adapter

import (
	"slices"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// ConvertSchema re-encodes a normalized schema into the legacy form:
// references get the "#/definitions/" prefix back, parent objects regain a
// required name list, and anyOf/oneOf collapse into allOf. The collapse is an
// approximation with no inverse; oneOf takes precedence over anyOf, and
// either replaces a declared allOf.
func ConvertSchema(s *domain.Schema) *domain.Schema {
	if s == nil {
		return nil
	}

	out := &domain.Schema{
		Type:        s.Type,
		Format:      s.Format,
		Description: s.Description,
		Required:    s.Required,
		Nullable:    s.Nullable,
		Deprecated:  s.Deprecated,
		Enum:        slices.Clone(s.Enum),
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		MinLength:   s.MinLength,
		MaxLength:   s.MaxLength,
	}

	if s.Ref != "" {
		out.Ref = LegacyRefPrefix + s.Ref
	}

	out.Items = ConvertSchema(s.Items)

	if len(s.Properties) > 0 {
		out.Properties = make([]domain.Property, 0, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties = append(out.Properties, domain.Property{Name: p.Name, Schema: ConvertSchema(p.Schema)})
			if p.Schema != nil && p.Schema.Required {
				out.RequiredProperties = append(out.RequiredProperties, p.Name)
			}
		}
	}

	out.AllOf = convertList(s.AllOf)
	if len(s.AnyOf) > 0 {
		out.AllOf = convertList(s.AnyOf)
	}
	if len(s.OneOf) > 0 {
		out.AllOf = convertList(s.OneOf)
	}

	return out
}

// ConvertDefinitions re-encodes a whole definitions dictionary.
func ConvertDefinitions(schemas map[string]*domain.Schema) map[string]*domain.Schema {
	defs := make(map[string]*domain.Schema, len(schemas))
	for name, s := range schemas {
		defs[name] = ConvertSchema(s)
	}
	return defs
}

func convertList(list []*domain.Schema) []*domain.Schema {
	if len(list) == 0 {
		return nil
	}
	out := make([]*domain.Schema, 0, len(list))
	for _, s := range list {
		out = append(out, ConvertSchema(s))
	}
	return out
}
