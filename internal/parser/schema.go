package parser

import (
	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// schemaNormalizer converts dialect schema nodes into domain.Schema.
// Swagger 2.0 has no anyOf/oneOf; unions are only read for OpenAPI 3.x.
type schemaNormalizer struct {
	unions bool
}

func (sn schemaNormalizer) normalize(n *document.Node) *domain.Schema {
	if !n.IsMap() {
		return nil
	}

	s := &domain.Schema{
		Format:      n.Get("format").Str(),
		Description: n.Get("description").Str(),
		Nullable:    n.Get("nullable").Bool(),
		Deprecated:  n.Get("deprecated").Bool(),
		Minimum:     n.Get("minimum").Float(),
		Maximum:     n.Get("maximum").Float(),
		MinLength:   n.Get("minLength").Int(),
		MaxLength:   n.Get("maxLength").Int(),
	}
	s.Type, s.Nullable = schemaType(n.Get("type"), s.Nullable)

	if ref := n.Get("$ref").Str(); ref != "" {
		s.Ref = RefName(ref)
	}

	for _, v := range n.Get("enum").Items() {
		s.Enum = append(s.Enum, v.Value())
	}

	if items := n.Get("items"); items.IsMap() {
		s.Items = sn.normalize(items)
	}

	if props := n.Get("properties"); props.IsMap() {
		required := make(map[string]bool)
		for _, name := range n.Get("required").Strings() {
			required[name] = true
		}
		for _, e := range props.Entries() {
			child := sn.normalize(e.Value)
			if child == nil {
				child = &domain.Schema{}
			}
			if required[e.Key] {
				child.Required = true
			}
			s.Properties = append(s.Properties, domain.Property{Name: e.Key, Schema: child})
		}
	}

	s.AllOf = sn.normalizeList(n.Get("allOf"))
	if sn.unions {
		s.AnyOf = sn.normalizeList(n.Get("anyOf"))
		s.OneOf = sn.normalizeList(n.Get("oneOf"))
	}

	return s
}

func (sn schemaNormalizer) normalizeList(n *document.Node) []*domain.Schema {
	var out []*domain.Schema
	for _, item := range n.Items() {
		if s := sn.normalize(item); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// schemaType reads "type", accepting the OpenAPI 3.1 array form where
// "null" marks the schema nullable.
func schemaType(n *document.Node, nullable bool) (string, bool) {
	if n.IsString() {
		return n.Str(), nullable
	}
	typ := ""
	for _, t := range n.Strings() {
		if t == "null" {
			nullable = true
			continue
		}
		if typ == "" {
			typ = t
		}
	}
	return typ, nullable
}

func (sn schemaNormalizer) normalizeDefinitions(defs *document.Node) map[string]*domain.Schema {
	schemas := make(map[string]*domain.Schema)
	for _, e := range defs.Entries() {
		if s := sn.normalize(e.Value); s != nil {
			schemas[e.Key] = s
		}
	}
	return schemas
}
