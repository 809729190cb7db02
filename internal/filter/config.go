package filter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ValidateConfig accepts a configuration declaring include rules, exclude
// rules or a non-empty operationIds list, with a known no-match policy.
func ValidateConfig(cfg *domain.FilterConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: configuration is empty", domain.ErrInvalidFilterConfig)
	}

	if !cfg.Include.Declared() && !cfg.Exclude.Declared() && len(cfg.OperationIDs) == 0 {
		return fmt.Errorf("%w: at least one of include, exclude or a non-empty operationIds is required", domain.ErrInvalidFilterConfig)
	}

	switch cfg.Options.OnNoMatch {
	case "", domain.OnNoMatchError, domain.OnNoMatchWarn, domain.OnNoMatchEmpty:
	default:
		return fmt.Errorf("%w: unknown onNoMatch %q (expected error, warn or empty)", domain.ErrInvalidFilterConfig, cfg.Options.OnNoMatch)
	}

	var errs []error
	sections := []struct {
		name  string
		rules *domain.FilterRules
	}{{"include", cfg.Include}, {"exclude", cfg.Exclude}}
	for _, section := range sections {
		if section.rules == nil {
			continue
		}
		for i, api := range section.rules.APIs {
			if strings.TrimSpace(api.Method) == "" || strings.TrimSpace(api.Path) == "" {
				errs = append(errs, fmt.Errorf("%w: %s.apis[%d] requires method and path", domain.ErrInvalidFilterConfig, section.name, i))
			}
		}
	}

	return errors.Join(errs...)
}

// LoadConfig reads a filter configuration file. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON.
func LoadConfig(ctx context.Context, path string) (*domain.FilterConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var parser koanf.Parser = kjson.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = kyaml.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load filter configuration %s: %w", path, err)
	}

	var cfg domain.FilterConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidFilterConfig, path, err)
	}

	return &cfg, nil
}

// FromLiteral builds an include-by-path-pattern configuration with
// wildcard, case-insensitive matching that warns when nothing matches.
func FromLiteral(patterns []string) *domain.FilterConfig {
	return &domain.FilterConfig{
		Include: &domain.FilterRules{PathPatterns: patterns},
		Options: domain.FilterOptions{
			StrictMatch:   false,
			CaseSensitive: false,
			OnNoMatch:     domain.OnNoMatchWarn,
		},
	}
}

// SplitLiteral splits a comma-separated pattern list, trimming blanks.
func SplitLiteral(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
