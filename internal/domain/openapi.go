// Package domain provides core business models and interfaces for the OpenAPI report generator.
package domain

// SpecVersion identifies the dialect family of a specification document.
type SpecVersion string

// Supported specification dialects.
const (
	VersionSwagger20 SpecVersion = "swagger-2.0"
	VersionOpenAPI30 SpecVersion = "openapi-3.0"
	VersionOpenAPI31 SpecVersion = "openapi-3.1"
)

// Parameter locations.
const (
	InQuery    = "query"
	InHeader   = "header"
	InPath     = "path"
	InBody     = "body"
	InFormData = "formData"
	InCookie   = "cookie"
)

// APISpec is the dialect-neutral representation of a specification document.
// It is built once per input document and treated as immutable afterwards.
type APISpec struct {
	Version    SpecVersion
	Info       Info
	Servers    []Server
	Operations []Operation
	Schemas    map[string]*Schema // Definitions dictionary (key is schema name)
	Tags       []Tag
}

// Info holds the document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Server represents an API server.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Tag represents an entry of the tag catalog.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Operation represents an HTTP operation on a path.
type Operation struct {
	Method      string // Upper-cased
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   []Response
	Deprecated  bool
}

// PrimaryTag returns the first tag of the operation, or an empty string.
func (o Operation) PrimaryTag() string {
	if len(o.Tags) == 0 {
		return ""
	}
	return o.Tags[0]
}

// Parameter represents a request parameter.
type Parameter struct {
	Name        string
	In          string // query, header, path, formData, cookie
	Description string
	Required    bool
	Schema      *Schema
}

// RequestBody represents a request body reduced to its primary media type.
type RequestBody struct {
	Description string
	Required    bool
	Schema      *Schema
	MediaType   string
}

// Response represents an API response reduced to its primary media type.
type Response struct {
	StatusCode  string
	Description string
	Schema      *Schema
	MediaType   string
}

// Property is a named object member. Properties keep declaration order.
type Property struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema"`
}

// Schema is the dialect-neutral type descriptor.
//
// Required is set by the containing object, not by the schema itself.
// RequiredProperties is only populated by the legacy re-encoding.
type Schema struct {
	Type               string     `json:"type,omitempty"`
	Format             string     `json:"format,omitempty"`
	Description        string     `json:"description,omitempty"`
	Required           bool       `json:"required,omitempty"`
	Nullable           bool       `json:"nullable,omitempty"`
	Deprecated         bool       `json:"deprecated,omitempty"`
	Items              *Schema    `json:"items,omitempty"`
	Properties         []Property `json:"properties,omitempty"`
	RequiredProperties []string   `json:"requiredProperties,omitempty"`
	AllOf              []*Schema  `json:"allOf,omitempty"`
	AnyOf              []*Schema  `json:"anyOf,omitempty"`
	OneOf              []*Schema  `json:"oneOf,omitempty"`
	Enum               []any      `json:"enum,omitempty"`
	Minimum            *float64   `json:"minimum,omitempty"`
	Maximum            *float64   `json:"maximum,omitempty"`
	MinLength          *int64     `json:"minLength,omitempty"`
	MaxLength          *int64     `json:"maxLength,omitempty"`
	Ref                string     `json:"ref,omitempty"`
}

// Property returns the named property schema, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// IsPropertyRequired reports whether the named property is required, either
// through the pushed-down flag or the parent's name list.
func (s *Schema) IsPropertyRequired(name string) bool {
	if s == nil {
		return false
	}
	if p := s.Property(name); p != nil && p.Required {
		return true
	}
	for _, r := range s.RequiredProperties {
		if r == name {
			return true
		}
	}
	return false
}

// KeyCount returns how many keywords the schema declares.
func (s *Schema) KeyCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, set := range []bool{
		s.Type != "",
		s.Format != "",
		s.Description != "",
		s.Required,
		s.Nullable,
		s.Deprecated,
		s.Items != nil,
		len(s.Properties) > 0,
		len(s.RequiredProperties) > 0,
		len(s.AllOf) > 0,
		len(s.AnyOf) > 0,
		len(s.OneOf) > 0,
		len(s.Enum) > 0,
		s.Minimum != nil,
		s.Maximum != nil,
		s.MinLength != nil,
		s.MaxLength != nil,
		s.Ref != "",
	} {
		if set {
			n++
		}
	}
	return n
}
