// Package parser normalizes Swagger 2.0 and OpenAPI 3.x documents into the
// dialect-neutral domain.APISpec.
package parser

import (
	"slices"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// SpecParser is implemented by each dialect variant.
type SpecParser interface {
	// Version returns the dialect tag of the parsed document.
	Version() domain.SpecVersion

	// IsValidSpec checks the dialect marker and the required top-level fields.
	IsValidSpec() bool

	// Normalize walks the whole document and builds the normalized spec.
	Normalize() *domain.APISpec
}

const defaultMediaType = "application/json"

var (
	swaggerMethods = []string{"get", "post", "put", "delete", "patch", "options", "head"}
	openAPIMethods = []string{"get", "post", "put", "delete", "patch", "options", "head", "trace"}

	mediaTypePriority = []string{"application/json", "application/xml", "text/plain"}
)

const (
	swaggerDefinitionPrefix = "#/definitions/"
	openAPISchemaPrefix     = "#/components/schemas/"
)

// RefName strips a dialect pointer prefix from a schema reference. Unknown
// pointer shapes fall back to the last path segment.
func RefName(ref string) string {
	for _, prefix := range []string{swaggerDefinitionPrefix, openAPISchemaPrefix} {
		if _, name, ok := strings.Cut(ref, prefix); ok {
			return name
		}
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// MainMediaType picks the representative media type of a content map:
// application/json, then application/xml, then text/plain, then the first declared.
func MainMediaType(types []string) string {
	for _, preferred := range mediaTypePriority {
		if slices.Contains(types, preferred) {
			return preferred
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return defaultMediaType
}

func isMethod(key string, methods []string) bool {
	return slices.Contains(methods, strings.ToLower(key))
}

func normalizeInfo(doc *document.Node) domain.Info {
	info := doc.Get("info")
	return domain.Info{
		Title:       info.Get("title").Str(),
		Version:     info.Get("version").Str(),
		Description: info.Get("description").Str(),
	}
}

func normalizeTags(doc *document.Node) []domain.Tag {
	var tags []domain.Tag
	for _, t := range doc.Get("tags").Items() {
		if name := t.Get("name").Str(); name != "" {
			tags = append(tags, domain.Tag{Name: name, Description: t.Get("description").Str()})
		}
	}
	return tags
}

// resolveLocal follows a "$ref" on node one hop within the document.
// Unresolvable references yield nil.
func resolveLocal(doc, node *document.Node) *document.Node {
	ref := node.Get("$ref").Str()
	if ref == "" {
		return node
	}
	target, err := doc.Resolve(ref)
	if err != nil || !target.IsMap() {
		return nil
	}
	return target
}

// mergeParameters combines path-level and operation-level parameters.
// Operation-level entries win on (name, in).
func mergeParameters(doc *document.Node, shared, own []*document.Node) []*document.Node {
	resolve := func(list []*document.Node) []*document.Node {
		out := make([]*document.Node, 0, len(list))
		for _, p := range list {
			if r := resolveLocal(doc, p); r != nil {
				out = append(out, r)
			}
		}
		return out
	}
	key := func(p *document.Node) string {
		return p.Get("name").Str() + "\x00" + p.Get("in").Str()
	}

	ops := resolve(own)
	overridden := make(map[string]struct{}, len(ops))
	for _, p := range ops {
		overridden[key(p)] = struct{}{}
	}

	var merged []*document.Node
	for _, p := range resolve(shared) {
		if _, ok := overridden[key(p)]; !ok {
			merged = append(merged, p)
		}
	}
	return append(merged, ops...)
}

func contentTypes(content *document.Node) []string {
	entries := content.Entries()
	types := make([]string, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.Key)
	}
	return types
}
