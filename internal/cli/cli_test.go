package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-report/internal/config"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var petstore = filepath.Join("..", "..", "testdata", "petstore-v2.yaml")

func newTestCLI(args ...string) *CLI {
	c := New(logger.NewConsoleLogger(os.Stdout), config.Defaults())
	c.rootCmd.SetArgs(args)
	return c
}

func TestDefaultOutputName(t *testing.T) {
	tests := []struct {
		title  string
		format string
		want   string
	}{
		{"Pet Store", "pdf", "pet-store.pdf"},
		{"  Pet   Store  ", "docx", "pet-store.docx"},
		{"Billing API (v2)!", "confluence", "billing-api-v2.adf.json"},
		{"orders.api", "json", "orders.api.json"},
		{"***", "pdf", "api-report.pdf"},
		{"", "html", "api-report.html"},
	}

	for _, tt := range tests {
		t.Run(tt.title+"/"+tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultOutputName(tt.title, tt.format))
		})
	}
}

func TestExecute_JSONReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")

	c := newTestCLI(petstore, "--format", "json", "--output", out, "--from-literal", "/pets, /pets/*")
	require.NoError(t, c.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var report struct {
		Title  string `json:"title"`
		Groups []struct {
			Name string `json:"name"`
		} `json:"groups"`
		Filter *domain.FilterSummary `json:"filter"`
	}
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "Pet Store", report.Title)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "Pets", report.Groups[0].Name)
	require.NotNil(t, report.Filter)
	assert.Equal(t, 3, report.Filter.Matched)
}

func TestExecute_FilterFile(t *testing.T) {
	dir := t.TempDir()
	filterPath := filepath.Join(dir, "filter.json")
	require.NoError(t, os.WriteFile(filterPath, []byte(`{"include": {"tags": ["Other"]}}`), 0o600))
	out := filepath.Join(dir, "report.adf.json")

	c := newTestCLI(petstore, "-f", "adf", "-o", out, "--from-json", filterPath)
	require.NoError(t, c.Execute())

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExecute_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing input argument", []string{}},
		{"unsupported format", []string{petstore, "-f", "html", "-o", filepath.Join(dir, "x.html")}},
		{"missing input file", []string{filepath.Join(dir, "absent.yaml"), "-o", filepath.Join(dir, "x.pdf")}},
		{"exclusive filters", []string{petstore, "--from-json", "f.json", "--from-literal", "/pets"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(tt.args...)
			c.rootCmd.SetOut(new(bytes.Buffer))
			c.rootCmd.SetErr(new(bytes.Buffer))
			require.Error(t, c.Execute())
		})
	}
}

func TestExecute_NoMatchErrorPolicy(t *testing.T) {
	dir := t.TempDir()
	filterPath := filepath.Join(dir, "filter.yaml")
	require.NoError(t, os.WriteFile(filterPath, []byte("include:\n  tags: [Nothing]\noptions:\n  onNoMatch: error\n"), 0o600))

	c := newTestCLI(petstore, "-o", filepath.Join(dir, "x.pdf"), "--from-json", filterPath)
	c.rootCmd.SetErr(new(bytes.Buffer))

	err := c.Execute()
	require.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestInspectCommand(t *testing.T) {
	var stdout bytes.Buffer
	c := newTestCLI("inspect", petstore)
	c.rootCmd.SetOut(&stdout)

	require.NoError(t, c.Execute())

	var info parser.SpecInfo
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &info))
	assert.Equal(t, domain.VersionSwagger20, info.Version)
	assert.Equal(t, "Pet Store", info.Title)
	assert.Equal(t, "2.0", info.SpecVersion)
	assert.True(t, info.Supported)
}
