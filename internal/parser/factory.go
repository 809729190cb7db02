package parser

import (
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// Detect inspects the swagger and openapi marker fields only.
func Detect(doc *document.Node) (domain.SpecVersion, bool) {
	if doc.Get("swagger").Str() == "2.0" {
		return domain.VersionSwagger20, true
	}

	if marker := doc.Get("openapi"); marker.IsString() {
		switch v := marker.Str(); {
		case strings.HasPrefix(v, "3.0"):
			return domain.VersionOpenAPI30, true
		case strings.HasPrefix(v, "3.1"):
			return domain.VersionOpenAPI31, true
		}
	}

	return "", false
}

// New returns the parser variant for the document's dialect.
func New(doc *document.Node) (SpecParser, error) {
	version, ok := Detect(doc)
	if !ok {
		return nil, unsupported(doc)
	}
	return ForVersion(version, doc)
}

// ForVersion maps a version tag to its parser variant.
func ForVersion(version domain.SpecVersion, doc *document.Node) (SpecParser, error) {
	switch version {
	case domain.VersionSwagger20:
		return NewSwaggerV2Parser(doc), nil
	case domain.VersionOpenAPI30, domain.VersionOpenAPI31:
		return NewOpenAPIV3Parser(doc), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedVersion, version)
	}
}

// Parse detects, validates and normalizes a document.
func Parse(doc *document.Node) (*domain.APISpec, error) {
	p, err := New(doc)
	if err != nil {
		return nil, err
	}

	if !p.IsValidSpec() {
		return nil, fmt.Errorf("%w: %s document requires %s", domain.ErrInvalidDocument, p.Version(), missingFields(doc))
	}

	return p.Normalize(), nil
}

// SupportedVersions lists the recognized dialect tags.
func SupportedVersions() []domain.SpecVersion {
	return []domain.SpecVersion{domain.VersionSwagger20, domain.VersionOpenAPI30, domain.VersionOpenAPI31}
}

// SpecInfo describes a document without normalizing it.
type SpecInfo struct {
	Version     domain.SpecVersion `json:"version,omitempty"`
	Title       string             `json:"title,omitempty"`
	SpecVersion string             `json:"specVersion,omitempty"`
	Supported   bool               `json:"supported"`
}

// Inspect reports the detected dialect and basic metadata of a document.
func Inspect(doc *document.Node) SpecInfo {
	version, ok := Detect(doc)

	marker := doc.Get("swagger").Str()
	if marker == "" {
		marker = doc.Get("openapi").Str()
	}

	return SpecInfo{
		Version:     version,
		Title:       doc.Get("info").Get("title").Str(),
		SpecVersion: marker,
		Supported:   ok,
	}
}

func unsupported(doc *document.Node) error {
	switch {
	case doc.Get("swagger").Exists():
		return fmt.Errorf("%w: swagger marker %q", domain.ErrUnsupportedVersion, markerText(doc.Get("swagger")))
	case doc.Get("openapi").Exists():
		return fmt.Errorf("%w: openapi marker %q", domain.ErrUnsupportedVersion, markerText(doc.Get("openapi")))
	default:
		return fmt.Errorf("%w: no swagger or openapi marker", domain.ErrUnsupportedVersion)
	}
}

func markerText(n *document.Node) string {
	return fmt.Sprint(n.Value())
}

func missingFields(doc *document.Node) string {
	var missing []string
	for _, key := range []string{"info", "paths"} {
		if !doc.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return "a valid version marker"
	}
	return strings.Join(missing, " and ")
}
