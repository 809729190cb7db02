package converters

import (
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/expand"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFormat     = "docx"
	docxTableStyle = "LightList-Accent4"
)

// DocxConverter renders reports to Word (DOCX).
type DocxConverter struct {
	expander *expand.Expander
}

// NewDocxConverter creates a DOCX converter expanding schemas with exp.
func NewDocxConverter(exp *expand.Expander) *DocxConverter {
	return &DocxConverter{expander: expanderOr(exp)}
}

// Format returns the output format name.
func (c *DocxConverter) Format() string {
	return docxFormat
}

// Convert renders the report as a Word document.
func (c *DocxConverter) Convert(report *domain.Report, output io.Writer) error {
	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	c.addTitle(document, report)
	c.addDescription(document, report)
	c.addServers(document, report)
	c.addGroups(document, report)

	if err := document.Write(output); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

func (c *DocxConverter) addTitle(document *docx.RootDoc, report *domain.Report) {
	_, _ = document.AddHeading(report.Title, 0)
	document.AddParagraph(fmt.Sprintf("Version: %s", report.Version))
	if f := report.Filter; f != nil {
		document.AddParagraph(fmt.Sprintf("Filtered: %d of %d endpoints", f.Matched, f.Total))
	}
	document.AddEmptyParagraph()
}

func (c *DocxConverter) addDescription(document *docx.RootDoc, report *domain.Report) {
	if report.Description == "" {
		return
	}

	_, _ = document.AddHeading("Description", 1)
	document.AddParagraph(stripHTML(report.Description))
	document.AddEmptyParagraph()
}

func (c *DocxConverter) addServers(document *docx.RootDoc, report *domain.Report) {
	if len(report.Servers) == 0 {
		return
	}

	_, _ = document.AddHeading("Servers", 1)

	for _, server := range report.Servers {
		text := server.URL
		if server.Description != "" {
			text = fmt.Sprintf("%s - %s", server.URL, server.Description)
		}

		document.AddParagraph(fmt.Sprintf("• %s", text))
	}

	document.AddEmptyParagraph()
}

func (c *DocxConverter) addGroups(document *docx.RootDoc, report *domain.Report) {
	_, _ = document.AddHeading("API List", 1)

	if len(report.Groups) == 0 {
		document.AddParagraph("No endpoints to document.")
		return
	}

	for _, group := range report.Groups {
		_, _ = document.AddHeading(group.Name, 2)
		if desc := report.TagDescription(group.Name); desc != "" {
			document.AddParagraph(stripHTML(desc))
		}

		for _, ep := range group.Endpoints {
			c.addEndpoint(document, buildEndpointView(ep, report.Definitions, c.expander))
		}
	}
}

func (c *DocxConverter) addEndpoint(document *docx.RootDoc, view endpointView) {
	ep := view.Endpoint
	_, _ = document.AddHeading(fmt.Sprintf("%s %s", formatMethod(ep.Method), ep.Path), 3)

	if ep.Summary != "" {
		document.AddParagraph("").AddText(stripHTML(ep.Summary)).Bold(true)
	}
	if ep.Description != "" {
		document.AddParagraph(stripHTML(ep.Description))
	}
	if ep.OperationID != "" {
		document.AddParagraph("Operation ID: " + ep.OperationID)
	}
	if ep.Deprecated {
		document.AddParagraph("").AddText("DEPRECATED").Bold(true)
	}

	if len(view.Parameters) > 0 || len(view.Request) > 0 {
		_, _ = document.AddHeading("REQUEST", 4)

		if len(view.Parameters) > 0 {
			rows := make([][]string, 0, len(view.Parameters))
			for _, p := range view.Parameters {
				rows = append(rows, []string{p.Name, locationLabel(p.In), parameterType(p), requiredLabel(p.Required), stripHTML(p.Description)})
			}
			c.addTable(document, []string{"Name", "In", "Type", "Required", "Description"}, rows)
		}

		for _, table := range view.Request {
			c.addFieldTable(document, table)
		}
	}

	if len(view.Responses) > 0 {
		_, _ = document.AddHeading("RESPONSE", 4)

		for _, resp := range view.Responses {
			document.AddParagraph("").AddText(fmt.Sprintf("STATUS CODE - %s:", resp.Status)).Bold(true)
			if resp.Description != "" {
				document.AddParagraph(stripHTML(resp.Description))
			}
			if resp.Model != nil {
				c.addFieldTable(document, *resp.Model)
				continue
			}
			document.AddParagraph("Type: " + resp.Type)
		}
	}

	document.AddEmptyParagraph()
}

// addFieldTable renders expanded fields with their indentation kept in the
// field column and required fields in bold.
func (c *DocxConverter) addFieldTable(document *docx.RootDoc, table fieldTable) {
	document.AddParagraph(table.Caption)

	tbl := document.AddTable()
	tbl.Style(docxTableStyle)

	hdr := tbl.AddRow()
	for _, h := range []string{"Field", "Type", "Description"} {
		hdr.AddCell().AddParagraph(h)
	}

	for _, f := range table.Fields {
		row := tbl.AddRow()
		name := strings.Repeat("    ", f.Level) + fieldName(f)
		row.AddCell().AddParagraph("").AddText(name).Bold(f.Required)
		row.AddCell().AddParagraph(f.Type)
		row.AddCell().AddParagraph(stripHTML(f.Description))
	}

	document.AddEmptyParagraph()
}

func (c *DocxConverter) addTable(document *docx.RootDoc, headers []string, rows [][]string) {
	tbl := document.AddTable()
	tbl.Style(docxTableStyle)

	hdr := tbl.AddRow()
	for _, h := range headers {
		hdr.AddCell().AddParagraph(h)
	}

	for _, values := range rows {
		row := tbl.AddRow()
		for _, v := range values {
			row.AddCell().AddParagraph(v)
		}
	}

	document.AddEmptyParagraph()
}
