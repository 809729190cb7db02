package parser

import (
	"os"
	"testing"

	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) *document.Node {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)
	doc, err := document.Parse(data)
	require.NoError(t, err)
	return doc
}

func findOperation(t *testing.T, spec *domain.APISpec, method, path string) domain.Operation {
	t.Helper()
	for _, op := range spec.Operations {
		if op.Method == method && op.Path == path {
			return op
		}
	}
	t.Fatalf("operation %s %s not found", method, path)
	return domain.Operation{}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		want   domain.SpecVersion
		wantOK bool
	}{
		{"swagger 2.0", `swagger: "2.0"`, domain.VersionSwagger20, true},
		{"openapi 3.0.0", `openapi: "3.0.0"`, domain.VersionOpenAPI30, true},
		{"openapi 3.0.3", `openapi: 3.0.3`, domain.VersionOpenAPI30, true},
		{"openapi 3.1.0", `openapi: "3.1.0"`, domain.VersionOpenAPI31, true},
		{"swagger wins over openapi", "swagger: \"2.0\"\nopenapi: \"3.0.0\"", domain.VersionSwagger20, true},
		{"swagger 1.2", `swagger: "1.2"`, "", false},
		{"openapi 3.2", `openapi: "3.2.0"`, "", false},
		{"numeric marker", `openapi: 3.0`, "", false},
		{"no marker", `info: {title: x}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(document.MustParse(tt.data))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnsupportedVersion(t *testing.T) {
	_, err := Parse(document.MustParse("openapi: \"2.5\"\ninfo: {title: x}\npaths: {}\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "Swagger 2.0")
	assert.Contains(t, err.Error(), "OpenAPI 3.0+")
	assert.Contains(t, err.Error(), "2.5")
}

func TestParse_InvalidDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		missing string
	}{
		{"swagger without paths", "swagger: \"2.0\"\ninfo: {title: x}\n", "paths"},
		{"openapi without info", "openapi: 3.0.0\npaths: {}\n", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(document.MustParse(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestForVersion(t *testing.T) {
	doc := document.MustParse(`openapi: 3.1.0`)

	p, err := ForVersion(domain.VersionOpenAPI31, doc)
	require.NoError(t, err)
	assert.IsType(t, &OpenAPIV3Parser{}, p)
	assert.Equal(t, domain.VersionOpenAPI31, p.Version())

	p, err = ForVersion(domain.VersionSwagger20, doc)
	require.NoError(t, err)
	assert.IsType(t, &SwaggerV2Parser{}, p)

	_, err = ForVersion("raml-1.0", doc)
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
}

func TestInspect(t *testing.T) {
	info := Inspect(loadFixture(t, "store-v3.yaml"))
	assert.Equal(t, SpecInfo{
		Version:     domain.VersionOpenAPI30,
		Title:       "Store",
		SpecVersion: "3.0.3",
		Supported:   true,
	}, info)

	info = Inspect(document.MustParse(`swagger: "1.2"`))
	assert.False(t, info.Supported)
	assert.Equal(t, "1.2", info.SpecVersion)
}

func TestRefName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"#/definitions/Pet", "Pet"},
		{"#/components/schemas/Order", "Order"},
		{"#/components/schemas/nested/Name", "nested/Name"},
		{"other.yaml#/definitions/Remote", "Remote"},
		{"#/x-custom/Thing", "Thing"},
		{"Plain", "Plain"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, RefName(tt.ref))
		})
	}
}

func TestMainMediaType(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"json first", []string{"text/plain", "application/json"}, "application/json"},
		{"xml over text", []string{"text/plain", "application/xml"}, "application/xml"},
		{"text", []string{"application/octet-stream", "text/plain"}, "text/plain"},
		{"first declared", []string{"application/vnd.a+json", "application/vnd.b+json"}, "application/vnd.a+json"},
		{"none", nil, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MainMediaType(tt.types))
		})
	}
}

func TestSupportedVersions(t *testing.T) {
	assert.ElementsMatch(t, []domain.SpecVersion{
		domain.VersionSwagger20, domain.VersionOpenAPI30, domain.VersionOpenAPI31,
	}, SupportedVersions())
}
