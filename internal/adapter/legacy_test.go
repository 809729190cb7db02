package adapter

import (
	"os"
	"testing"

	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFixture(t *testing.T, name string) *domain.APISpec {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)
	doc, err := document.Parse(data)
	require.NoError(t, err)
	spec, err := parser.Parse(doc)
	require.NoError(t, err)
	return spec
}

func TestToLegacy_SortsGroupsAndEndpoints(t *testing.T) {
	spec := &domain.APISpec{
		Operations: []domain.Operation{
			{Method: "GET", Path: "/b", Tags: []string{"Zoo"}},
			{Method: "GET", Path: "/a", Tags: []string{"Zoo"}},
			{Method: "GET", Path: "/b", Tags: []string{"Apple"}},
			{Method: "GET", Path: "/a", Tags: []string{"Apple"}},
		},
	}

	report := ToLegacy(spec)
	require.Len(t, report.Groups, 2)

	assert.Equal(t, "Apple", report.Groups[0].Name)
	assert.Equal(t, "Zoo", report.Groups[1].Name)
	for _, g := range report.Groups {
		require.Len(t, g.Endpoints, 2)
		assert.Equal(t, "/a", g.Endpoints[0].Path)
		assert.Equal(t, "/b", g.Endpoints[1].Path)
	}
}

func TestToLegacy_StableWithinSamePath(t *testing.T) {
	spec := &domain.APISpec{
		Operations: []domain.Operation{
			{Method: "POST", Path: "/pets"},
			{Method: "GET", Path: "/pets"},
			{Method: "DELETE", Path: "/pets"},
		},
	}

	endpoints := ToLegacy(spec).Groups[0].Endpoints
	require.Len(t, endpoints, 3)
	assert.Equal(t, "POST", endpoints[0].Method)
	assert.Equal(t, "GET", endpoints[1].Method)
	assert.Equal(t, "DELETE", endpoints[2].Method)
}

func TestToLegacy_ByteWiseOrder(t *testing.T) {
	spec := &domain.APISpec{
		Operations: []domain.Operation{
			{Method: "GET", Path: "/x", Tags: []string{"beta"}},
			{Method: "GET", Path: "/x", Tags: []string{"Zeta"}},
		},
	}

	groups := ToLegacy(spec).Groups
	assert.Equal(t, "Zeta", groups[0].Name)
	assert.Equal(t, "beta", groups[1].Name)
}

func TestToLegacy_UntaggedGoesToOther(t *testing.T) {
	report := ToLegacy(&domain.APISpec{
		Operations: []domain.Operation{{Method: "GET", Path: "/health"}},
	})

	require.Len(t, report.Groups, 1)
	assert.Equal(t, domain.DefaultGroupName, report.Groups[0].Name)
	assert.Equal(t, domain.DefaultGroupName, report.Groups[0].Endpoints[0].Tag)
}

func TestToLegacy_PetsScenario(t *testing.T) {
	report := ToLegacy(parseFixture(t, "petstore-v2.yaml"))

	assert.Equal(t, "Pet Store", report.Title)
	assert.Equal(t, "1.0", report.Version)
	assert.Equal(t, domain.VersionSwagger20, report.SpecVersion)
	assert.Equal(t, "Pet operations", report.TagDescription("Pets"))

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "Other", report.Groups[0].Name)
	pets := report.Groups[1]
	assert.Equal(t, "Pets", pets.Name)
	require.Len(t, pets.Endpoints, 3)

	var post domain.Endpoint
	for _, ep := range pets.Endpoints {
		if ep.Method == "POST" && ep.Path == "/pets" {
			post = ep
		}
	}
	require.Equal(t, "POST", post.Method)

	var body *domain.EndpointParameter
	for i := range post.Parameters {
		if post.Parameters[i].Name == "body" {
			body = &post.Parameters[i]
		}
	}
	require.NotNil(t, body)
	assert.Equal(t, domain.InBody, body.In)
	assert.True(t, body.Required)
	assert.Equal(t, "Pet to add", body.Description)
	assert.Equal(t, "application/json", body.MediaType)
	require.NotNil(t, body.Schema)
	assert.Equal(t, "#/definitions/Pet", body.Schema.Ref)

	// The body parameter is appended after the regular ones.
	assert.Equal(t, "body", post.Parameters[len(post.Parameters)-1].Name)
}

func TestToLegacy_DefaultsAndCookies(t *testing.T) {
	report := ToLegacy(parseFixture(t, "store-v3.yaml"))

	var get domain.Endpoint
	for _, g := range report.Groups {
		for _, ep := range g.Endpoints {
			if ep.Method == "GET" && ep.Path == "/orders/{id}" {
				get = ep
			}
		}
	}
	require.Equal(t, "GET", get.Method)

	assert.Equal(t, "Get {id}", get.Summary)
	assert.Equal(t, "Operation for GET /orders/{id}", get.Description)
	assert.Equal(t, domain.InHeader, get.Parameters[1].In)
	assert.Equal(t, "string", get.Parameters[1].Type)

	resp, ok := get.Responses["200"]
	require.True(t, ok)
	assert.Equal(t, "#/definitions/Order", resp.Schema.Ref)
	assert.Equal(t, "application/vnd.custom+json", resp.MediaType)

	require.Contains(t, report.Definitions, "Order")
	assert.Equal(t, []string{"id"}, report.Definitions["Order"].RequiredProperties)
}

func TestDefaultSummary(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/pets/{id}", "Get {id}"},
		{"post", "/pets", "Add pets"},
		{"PUT", "/users/me", "Update me"},
		{"DELETE", "/sessions/", "Delete sessions"},
		{"PATCH", "/a/b", "Partially Update b"},
		{"OPTIONS", "/", "OPTIONS API"},
		{"HEAD", "", "HEAD API"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultSummary(tt.method, tt.path))
		})
	}
}

func TestDefaultDescription(t *testing.T) {
	assert.Equal(t, "Operation ID: getPet", DefaultDescription("GET", "/pets/{id}", "getPet"))
	assert.Equal(t, "Operation for DELETE /pets", DefaultDescription("delete", "/pets", ""))
}
