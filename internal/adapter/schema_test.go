package adapter

import (
	"testing"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSchema_PreservesScalars(t *testing.T) {
	in := &domain.Schema{
		Type:        "string",
		Format:      "date-time",
		Description: "Creation time",
		Nullable:    true,
		Enum:        []any{"a"},
	}

	out := ConvertSchema(in)
	assert.Equal(t, in.Type, out.Type)
	assert.Equal(t, in.Format, out.Format)
	assert.Equal(t, in.Description, out.Description)
	assert.True(t, out.Nullable)
	assert.Equal(t, []any{"a"}, out.Enum)
	assert.NotSame(t, in, out)
}

func TestConvertSchema_ReferencePrefix(t *testing.T) {
	out := ConvertSchema(&domain.Schema{
		Type:  "array",
		Items: &domain.Schema{Ref: "Pet"},
	})
	assert.Equal(t, "#/definitions/Pet", out.Items.Ref)
}

func TestConvertSchema_RequiredNames(t *testing.T) {
	out := ConvertSchema(&domain.Schema{
		Type: "object",
		Properties: []domain.Property{
			{Name: "id", Schema: &domain.Schema{Type: "string", Required: true}},
			{Name: "note", Schema: &domain.Schema{Type: "string"}},
			{Name: "code", Schema: &domain.Schema{Type: "integer", Required: true}},
		},
	})

	assert.Equal(t, []string{"id", "code"}, out.RequiredProperties)
	require.Len(t, out.Properties, 3)
	assert.Equal(t, "note", out.Properties[1].Name)
	assert.True(t, out.IsPropertyRequired("code"))
}

func TestConvertSchema_UnionCollapse(t *testing.T) {
	tests := []struct {
		name     string
		in       *domain.Schema
		wantType []string
	}{
		{
			name:     "allOf kept",
			in:       &domain.Schema{AllOf: []*domain.Schema{{Type: "object"}}},
			wantType: []string{"object"},
		},
		{
			name: "anyOf replaces allOf",
			in: &domain.Schema{
				AllOf: []*domain.Schema{{Type: "object"}},
				AnyOf: []*domain.Schema{{Type: "string"}, {Type: "integer"}},
			},
			wantType: []string{"string", "integer"},
		},
		{
			name: "oneOf wins over anyOf",
			in: &domain.Schema{
				AnyOf: []*domain.Schema{{Type: "string"}},
				OneOf: []*domain.Schema{{Type: "boolean"}},
			},
			wantType: []string{"boolean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ConvertSchema(tt.in)
			var types []string
			for _, s := range out.AllOf {
				types = append(types, s.Type)
			}
			assert.Equal(t, tt.wantType, types)
			assert.Empty(t, out.AnyOf)
			assert.Empty(t, out.OneOf)
		})
	}
}

func TestConvertSchema_Nil(t *testing.T) {
	assert.Nil(t, ConvertSchema(nil))
}

func TestConvertDefinitions(t *testing.T) {
	defs := ConvertDefinitions(map[string]*domain.Schema{
		"Pet": {Type: "object", Properties: []domain.Property{{Name: "owner", Schema: &domain.Schema{Ref: "Owner"}}}},
	})

	require.Contains(t, defs, "Pet")
	assert.Equal(t, "#/definitions/Owner", defs["Pet"].Property("owner").Ref)
}
