// Package validator runs strict structural validation through kin-openapi.
//
// The report pipeline itself is lenient: it reads whatever it can from a
// document. Strict mode rejects documents kin-openapi considers invalid
// before any report is built.
package validator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

// Validate checks doc against the rules of its dialect. Swagger 2.0 documents
// are converted to OpenAPI 3 first. OpenAPI 3.1 documents are only loaded,
// since kin-openapi validates against the 3.0 schema rules.
func Validate(ctx context.Context, version domain.SpecVersion, doc *document.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	var spec *openapi3.T
	switch version {
	case domain.VersionSwagger20:
		spec, err = fromSwagger(loader, raw)
	case domain.VersionOpenAPI30, domain.VersionOpenAPI31:
		spec, err = loader.LoadFromData(raw)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedVersion, version)
	}
	if err != nil {
		return fmt.Errorf("%w: load document: %v", domain.ErrInvalidDocument, err)
	}

	if version == domain.VersionOpenAPI31 {
		return nil
	}

	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	return nil
}

func fromSwagger(loader *openapi3.Loader, raw []byte) (*openapi3.T, error) {
	var v2 openapi2.T
	if err := json.Unmarshal(raw, &v2); err != nil {
		return nil, err
	}

	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("convert to OpenAPI 3: %w", err)
	}

	if err := loader.ResolveRefsIn(v3, nil); err != nil {
		return nil, fmt.Errorf("resolve references: %w", err)
	}

	return v3, nil
}
