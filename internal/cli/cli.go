// Package cli provides the command-line interface for the report generator.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-report/internal/adapters/converters"
	"github.com/GabrielNunesIT/openapi-report/internal/config"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/expand"
	"github.com/GabrielNunesIT/openapi-report/internal/filter"
	"github.com/GabrielNunesIT/openapi-report/internal/pipeline"
	"github.com/spf13/cobra"
)

const fallbackOutputName = "api-report"

// CLI holds the command-line interface configuration.
type CLI struct {
	log     logger.ILogger
	cfg     config.Config
	rootCmd *cobra.Command

	outputFile  string
	format      string
	fromJSON    string
	fromLiteral string
	maxDepth    int
	strict      bool
}

// New creates a new CLI instance. Flag defaults come from cfg.
func New(log logger.ILogger, cfg config.Config) *CLI {
	cli := &CLI{
		log: log,
		cfg: cfg,
	}

	cli.rootCmd = &cobra.Command{
		Use:   "openapi-report <input>",
		Short: "Generate API reports from Swagger 2.0 or OpenAPI 3.x specifications",
		Long: "A CLI tool that turns Swagger 2.0 and OpenAPI 3.x documents (JSON or YAML) into\n" +
			"grouped API reports with expanded request and response tables, rendered as\n" +
			"PDF, Word (DOCX), Confluence (ADF) or JSON.",
		Args:         cobra.ExactArgs(1),
		RunE:         cli.run,
		SilenceUsage: true,
	}

	cli.setupFlags()
	cli.rootCmd.AddCommand(cli.inspectCommand())

	return cli
}

func (c *CLI) setupFlags() {
	flags := c.rootCmd.Flags()
	flags.StringVarP(&c.outputFile, "output", "o", "", "Path for the output file (default: derived from the API title)")
	flags.StringVarP(&c.format, "format", "f", c.cfg.Format, "Output format: pdf, docx, confluence, json")
	flags.StringVar(&c.fromJSON, "from-json", "", "Filter configuration file (JSON or YAML)")
	flags.StringVar(&c.fromLiteral, "from-literal", "", "Comma-separated path patterns to include, e.g. /api/users/*,/api/orders")
	flags.IntVar(&c.maxDepth, "max-depth", c.cfg.MaxExpandDepth, "Maximum schema expansion depth")
	flags.BoolVar(&c.strict, "strict", c.cfg.Strict, "Reject documents that fail structural validation")

	c.rootCmd.MarkFlagsMutuallyExclusive("from-json", "from-literal")
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.ExecuteContext(context.Background())
}

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	input := args[0]

	converter, err := c.getConverter()
	if err != nil {
		return err
	}

	c.log.Infof("Reading API specification: %s", input)
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	report, err := c.buildReport(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	outputPath := c.outputFile
	if outputPath == "" {
		outputPath = DefaultOutputName(report.Title, converter.Format())
	}

	c.log.Infof("Converting to %s format...", converter.Format())

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outputFile.Close()

	if err := converter.Convert(report, outputFile); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	c.log.Infof("Successfully created: %s", outputPath)

	return nil
}

func (c *CLI) buildReport(ctx context.Context, data []byte) (*domain.Report, error) {
	p := pipeline.New(c.log,
		pipeline.WithStrictValidation(c.strict),
		pipeline.WithPatternCacheSize(c.cfg.PatternCacheSize),
	)

	switch {
	case c.fromJSON != "":
		return p.RunWithFilterFile(ctx, data, c.fromJSON)
	case c.fromLiteral != "":
		patterns := filter.SplitLiteral(c.fromLiteral)
		c.log.Infof("Using --from-literal filter: %s", strings.Join(patterns, ", "))
		return p.Run(ctx, data, filter.FromLiteral(patterns))
	default:
		return p.Run(ctx, data, nil)
	}
}

func (c *CLI) getConverter() (domain.Converter, error) {
	exp := expand.New(c.maxDepth)

	switch strings.ToLower(c.format) {
	case "pdf":
		return converters.NewPDFConverter(exp), nil
	case "docx", "word":
		return converters.NewDocxConverter(exp), nil
	case "confluence", "adf":
		return converters.NewADFConverter(exp), nil
	case "json":
		return converters.NewJSONConverter(exp), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: pdf, docx, confluence, json)", c.format)
	}
}

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "inspect <input>",
		Short:        "Detect the specification format of a document",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}

			info, err := pipeline.New(c.log).Inspect(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

var (
	unsafeNameChars = regexp.MustCompile(`[^\w\s.-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

var formatExtensions = map[string]string{
	"pdf":        ".pdf",
	"docx":       ".docx",
	"confluence": ".adf.json",
	"json":       ".json",
}

// DefaultOutputName derives an output file name from the API title.
func DefaultOutputName(title, format string) string {
	name := unsafeNameChars.ReplaceAllString(title, "")
	name = strings.ToLower(whitespaceRuns.ReplaceAllString(strings.TrimSpace(name), "-"))
	if name == "" {
		name = fallbackOutputName
	}

	ext, ok := formatExtensions[format]
	if !ok {
		ext = "." + format
	}
	return name + ext
}
