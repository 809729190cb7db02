package domain

import "io"

// Converter defines the interface for report renderers.
type Converter interface {
	// Convert renders a report to the target format.
	Convert(report *Report, output io.Writer) error

	// Format returns the output format name (e.g., "pdf", "docx").
	Format() string
}
