package filter

import (
	"testing"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGroups() []domain.Group {
	return []domain.Group{
		{Name: "Orders", Endpoints: []domain.Endpoint{
			{Method: "GET", Path: "/api/orders", Tag: "Orders", OperationID: "listOrders"},
			{Method: "DELETE", Path: "/api/orders/{id}", Tag: "Orders", OperationID: "deleteOrder"},
		}},
		{Name: "Users", Endpoints: []domain.Endpoint{
			{Method: "GET", Path: "/api/users", Tag: "Users", OperationID: "listUsers"},
			{Method: "GET", Path: "/api/users/{id}", Tag: "Users", OperationID: "getUser"},
			{Method: "POST", Path: "/api/users", Tag: "Users"},
		}},
	}
}

func paths(groups []domain.Group) []string {
	var out []string
	for _, g := range groups {
		for _, ep := range g.Endpoints {
			out = append(out, ep.Method+" "+ep.Path)
		}
	}
	return out
}

func TestApply_IncludeByPattern(t *testing.T) {
	cfg := domain.FilterConfig{Include: &domain.FilterRules{PathPatterns: []string{"/api/users/*"}}}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /api/users/{id}"}, paths(result.FilteredGroups))
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 5, result.Total)
	assert.Len(t, result.SkippedAPIs, 4)
	for _, s := range result.SkippedAPIs {
		assert.Equal(t, ReasonNotIncluded, s.Reason)
	}
}

func TestApply_DropsEmptyGroups(t *testing.T) {
	cfg := domain.FilterConfig{Include: &domain.FilterRules{Tags: []string{"orders"}}}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)

	require.Len(t, result.FilteredGroups, 1)
	assert.Equal(t, "Orders", result.FilteredGroups[0].Name)
	assert.Equal(t, 2, result.Matched)
}

func TestApply_ExcludeWinsOverInclude(t *testing.T) {
	cfg := domain.FilterConfig{
		Include: &domain.FilterRules{Tags: []string{"Users"}},
		Exclude: &domain.FilterRules{APIs: []domain.APIRef{{Method: "post", Path: "/api/users"}}},
	}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /api/users", "GET /api/users/{id}"}, paths(result.FilteredGroups))

	reasons := map[string]string{}
	for _, s := range result.SkippedAPIs {
		reasons[s.Method+" "+s.Path] = s.Reason
	}
	assert.Equal(t, ReasonExcluded, reasons["POST /api/users"])
	assert.Equal(t, ReasonNotIncluded, reasons["GET /api/orders"])
}

func TestApply_ExcludeOnly(t *testing.T) {
	cfg := domain.FilterConfig{Exclude: &domain.FilterRules{PathPatterns: []string{"/api/orders*"}}}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Matched)
	assert.Equal(t, "Users", result.FilteredGroups[0].Name)
}

func TestMatches_APIs(t *testing.T) {
	ep := domain.Endpoint{Method: "GET", Path: "/api/users/{id}"}

	tests := []struct {
		name string
		opts domain.FilterOptions
		api  domain.APIRef
		want bool
	}{
		{"wildcard path", domain.FilterOptions{}, domain.APIRef{Method: "GET", Path: "/api/users/*"}, true},
		{"strict rejects wildcard", domain.FilterOptions{StrictMatch: true}, domain.APIRef{Method: "GET", Path: "/api/users/*"}, false},
		{"strict exact", domain.FilterOptions{StrictMatch: true}, domain.APIRef{Method: "GET", Path: "/api/users/{id}"}, true},
		{"strict ignores case", domain.FilterOptions{StrictMatch: true}, domain.APIRef{Method: "get", Path: "/API/users/{id}"}, true},
		{"method mismatch", domain.FilterOptions{}, domain.APIRef{Method: "POST", Path: "/api/users/*"}, false},
		{"method case insensitive", domain.FilterOptions{}, domain.APIRef{Method: "get", Path: "/api/users/*"}, true},
		{"configured method upper-cased", domain.FilterOptions{CaseSensitive: true}, domain.APIRef{Method: "get", Path: "/api/users/*"}, true},
		{"case sensitive path", domain.FilterOptions{CaseSensitive: true}, domain.APIRef{Method: "GET", Path: "/API/users/*"}, false},
		{"case sensitive strict path", domain.FilterOptions{CaseSensitive: true, StrictMatch: true}, domain.APIRef{Method: "get", Path: "/api/Users/{id}"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(domain.FilterConfig{
				Include: &domain.FilterRules{APIs: []domain.APIRef{tt.api}},
				Options: tt.opts,
			})
			assert.Equal(t, tt.want, f.Matches(ep))
		})
	}
}

func TestApply_OperationIDs(t *testing.T) {
	cfg := domain.FilterConfig{OperationIDs: []string{"getUser", "DELETEORDER"}}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)

	assert.Equal(t, []string{"DELETE /api/orders/{id}", "GET /api/users/{id}"}, paths(result.FilteredGroups))
	for _, s := range result.SkippedAPIs {
		assert.Equal(t, ReasonNotOperationID, s.Reason)
	}
}

func TestApply_OperationIDsWithInclude(t *testing.T) {
	cfg := domain.FilterConfig{
		Include:      &domain.FilterRules{Tags: []string{"Users"}},
		OperationIDs: []string{"getUser", "listOrders"},
	}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /api/users/{id}"}, paths(result.FilteredGroups))
}

func TestApply_NoMatchPolicies(t *testing.T) {
	include := &domain.FilterRules{PathPatterns: []string{"/nothing"}}

	t.Run("error", func(t *testing.T) {
		cfg := domain.FilterConfig{Include: include, Options: domain.FilterOptions{OnNoMatch: domain.OnNoMatchError}}

		result, err := New(cfg).Apply(sampleGroups())
		require.ErrorIs(t, err, domain.ErrNoMatch)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "total APIs: 5")
	})

	t.Run("warn", func(t *testing.T) {
		cfg := domain.FilterConfig{Include: include, Options: domain.FilterOptions{OnNoMatch: domain.OnNoMatchWarn}}

		result, err := New(cfg).Apply(sampleGroups())
		require.NoError(t, err)
		assert.Equal(t, 0, result.Matched)
		assert.NotNil(t, result.FilteredGroups)
		assert.Empty(t, result.FilteredGroups)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "No APIs match the filter criteria. Total APIs: 5", result.Warnings[0])
	})

	t.Run("default is warn", func(t *testing.T) {
		result, err := New(domain.FilterConfig{Include: include}).Apply(sampleGroups())
		require.NoError(t, err)
		assert.Len(t, result.Warnings, 1)
	})

	t.Run("empty", func(t *testing.T) {
		cfg := domain.FilterConfig{Include: include, Options: domain.FilterOptions{OnNoMatch: domain.OnNoMatchEmpty}}

		result, err := New(cfg).Apply(sampleGroups())
		require.NoError(t, err)
		assert.Empty(t, result.FilteredGroups)
		assert.Empty(t, result.Warnings)
		assert.Len(t, result.SkippedAPIs, 5)
	})
}

func TestApply_DeclaredEmptyIncludeMatchesNothing(t *testing.T) {
	cfg := domain.FilterConfig{
		Include: &domain.FilterRules{Tags: []string{}},
		Options: domain.FilterOptions{OnNoMatch: domain.OnNoMatchEmpty},
	}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Matched)
}

func TestApply_PreservesOrder(t *testing.T) {
	cfg := domain.FilterConfig{Include: &domain.FilterRules{PathPatterns: []string{"/api/*"}}}

	result, err := New(cfg, WithPatternCacheSize(1)).Apply(sampleGroups())
	require.NoError(t, err)
	assert.Equal(t, paths(sampleGroups()), paths(result.FilteredGroups))
}

func TestFilterResult_Summary(t *testing.T) {
	cfg := domain.FilterConfig{Include: &domain.FilterRules{Tags: []string{"Orders"}}}

	result, err := New(cfg).Apply(sampleGroups())
	require.NoError(t, err)

	summary := result.Summary()
	assert.Equal(t, 2, summary.Matched)
	assert.Equal(t, 5, summary.Total)
	assert.Len(t, summary.SkippedAPIs, 3)
}
