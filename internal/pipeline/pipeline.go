// Package pipeline wires the document, parser, adapter and filter stages
// into a single report-building run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-report/internal/adapter"
	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/filter"
	"github.com/GabrielNunesIT/openapi-report/internal/parser"
	"github.com/GabrielNunesIT/openapi-report/internal/validator"
)

// Pipeline builds reports from raw specification documents.
type Pipeline struct {
	log              logger.ILogger
	strict           bool
	patternCacheSize int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStrictValidation enables kin-openapi validation before normalizing.
func WithStrictValidation(strict bool) Option {
	return func(p *Pipeline) {
		p.strict = strict
	}
}

// WithPatternCacheSize sets the wildcard cache size handed to filters.
func WithPatternCacheSize(size int) Option {
	return func(p *Pipeline) {
		p.patternCacheSize = size
	}
}

// New creates a Pipeline logging through log.
func New(log logger.ILogger, opts ...Option) *Pipeline {
	p := &Pipeline{log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run turns a JSON or YAML document into a report. When filterCfg is non-nil
// it is validated and applied to the grouped endpoints.
func (p *Pipeline) Run(ctx context.Context, data []byte, filterCfg *domain.FilterConfig) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}

	version, ok := parser.Detect(doc)
	if !ok {
		_, err := parser.New(doc)
		return nil, err
	}
	p.log.Infof("Detected specification format: %s", version)

	if p.strict {
		if err := validator.Validate(ctx, version, doc); err != nil {
			return nil, err
		}
		p.log.Infof("Strict validation passed")
	}

	spec, err := parser.Parse(doc)
	if err != nil {
		return nil, err
	}

	report := adapter.ToLegacy(spec)
	p.log.Infof("Loaded API: %s (v%s), %d endpoints in %d groups",
		report.Title, report.Version, report.EndpointCount(), len(report.Groups))

	if filterCfg == nil {
		return report, nil
	}

	if err := filter.ValidateConfig(filterCfg); err != nil {
		return nil, err
	}

	result, err := filter.New(*filterCfg, filter.WithPatternCacheSize(p.patternCacheSize)).Apply(report.Groups)
	if err != nil {
		return nil, err
	}

	for _, warning := range result.Warnings {
		p.log.Warningf("%s", warning)
	}
	p.log.Infof("Filter matched %d of %d endpoints", result.Matched, result.Total)
	for _, skipped := range result.SkippedAPIs {
		p.log.Infof("Skipped %s %s: %s", skipped.Method, skipped.Path, skipped.Reason)
	}

	report.Groups = result.FilteredGroups
	report.Filter = result.Summary()

	return report, nil
}

// RunWithFilterFile loads a filter configuration file and runs with it.
func (p *Pipeline) RunWithFilterFile(ctx context.Context, data []byte, path string) (*domain.Report, error) {
	cfg, err := filter.LoadConfig(ctx, path)
	if err != nil {
		return nil, err
	}
	p.log.Infof("Loaded filter configuration from: %s", path)

	return p.Run(ctx, data, cfg)
}

// Inspect reports the dialect and title of a document without building a report.
func (p *Pipeline) Inspect(data []byte) (parser.SpecInfo, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return parser.SpecInfo{}, fmt.Errorf("inspect: %w", err)
	}
	return parser.Inspect(doc), nil
}
