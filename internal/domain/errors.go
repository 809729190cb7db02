package domain

import "errors"

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the input could not be decoded as JSON or YAML.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedVersion indicates neither dialect marker matched.
	ErrUnsupportedVersion = errors.New("unsupported API specification version (supported: Swagger 2.0, OpenAPI 3.0+)")

	// ErrInvalidDocument indicates a recognized document missing required fields.
	ErrInvalidDocument = errors.New("invalid API specification")

	// ErrInvalidFilterConfig indicates a malformed filter configuration.
	ErrInvalidFilterConfig = errors.New("invalid filter configuration")

	// ErrNoMatch indicates a filter selected no endpoints under the error policy.
	ErrNoMatch = errors.New("no APIs match the filter criteria")
)
