package converters

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/expand"
)

const adfFormat = "confluence"

// ADFConverter renders reports to Atlassian Document Format (ADF) for Confluence.
type ADFConverter struct {
	expander *expand.Expander
}

// NewADFConverter creates an ADF converter expanding schemas with exp.
func NewADFConverter(exp *expand.Expander) *ADFConverter {
	return &ADFConverter{expander: expanderOr(exp)}
}

// Format returns the output format name.
func (c *ADFConverter) Format() string {
	return adfFormat
}

// ADF node types.
type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Attrs   *adfAttrs `json:"attrs,omitempty"`
	Content []adfNode `json:"content,omitempty"`
	Text    string    `json:"text,omitempty"`
	Marks   []adfMark `json:"marks,omitempty"`
}

type adfAttrs struct {
	Level  int    `json:"level,omitempty"`
	Layout string `json:"layout,omitempty"`
}

type adfMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Convert renders the report as ADF JSON.
func (c *ADFConverter) Convert(report *domain.Report, output io.Writer) error {
	adf := &adfDocument{
		Version: 1,
		Type:    "doc",
		Content: []adfNode{},
	}

	adf.Content = append(adf.Content, c.heading(report.Title, 1))
	adf.Content = append(adf.Content, c.paragraph(fmt.Sprintf("Version: %s", report.Version)))

	if f := report.Filter; f != nil {
		adf.Content = append(adf.Content, c.paragraph(fmt.Sprintf("Filtered: %d of %d endpoints", f.Matched, f.Total)))
	}

	if report.Description != "" {
		adf.Content = append(adf.Content, c.heading("Description", 2))
		adf.Content = append(adf.Content, c.paragraph(stripHTML(report.Description)))
	}

	if len(report.Servers) > 0 {
		adf.Content = append(adf.Content, c.heading("Servers", 2))
		adf.Content = append(adf.Content, c.serverList(report.Servers))
	}

	adf.Content = append(adf.Content, c.heading("API List", 2))
	for _, group := range report.Groups {
		adf.Content = append(adf.Content, c.heading(group.Name, 3))
		if desc := report.TagDescription(group.Name); desc != "" {
			adf.Content = append(adf.Content, c.paragraph(stripHTML(desc)))
		}
		for _, ep := range group.Endpoints {
			adf.Content = append(adf.Content, c.endpointNodes(buildEndpointView(ep, report.Definitions, c.expander))...)
		}
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(adf); err != nil {
		return fmt.Errorf("failed to encode ADF: %w", err)
	}

	return nil
}

func (c *ADFConverter) heading(text string, level int) adfNode {
	return adfNode{
		Type:  "heading",
		Attrs: &adfAttrs{Level: level},
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

// paragraph builds a paragraph node. ADF rejects empty text nodes, so an
// empty string yields an empty paragraph.
func (c *ADFConverter) paragraph(text string) adfNode {
	if text == "" {
		return adfNode{Type: "paragraph"}
	}
	return adfNode{
		Type: "paragraph",
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (c *ADFConverter) boldText(text string) adfNode {
	return adfNode{
		Type: "text",
		Text: text,
		Marks: []adfMark{
			{Type: "strong"},
		},
	}
}

func (c *ADFConverter) codeText(text string) adfNode {
	return adfNode{
		Type: "text",
		Text: text,
		Marks: []adfMark{
			{Type: "code"},
		},
	}
}

func (c *ADFConverter) serverList(servers []domain.Server) adfNode {
	items := make([]adfNode, 0, len(servers))

	for _, server := range servers {
		text := server.URL
		if server.Description != "" {
			text = fmt.Sprintf("%s - %s", server.URL, server.Description)
		}

		items = append(items, adfNode{
			Type: "listItem",
			Content: []adfNode{
				c.paragraph(text),
			},
		})
	}

	return adfNode{
		Type:    "bulletList",
		Content: items,
	}
}

func (c *ADFConverter) endpointNodes(view endpointView) []adfNode {
	ep := view.Endpoint
	var nodes []adfNode

	nodes = append(nodes, adfNode{
		Type:  "heading",
		Attrs: &adfAttrs{Level: 4},
		Content: []adfNode{
			c.boldText(formatMethod(ep.Method)),
			c.codeText(" " + ep.Path),
		},
	})

	if ep.Summary != "" {
		nodes = append(nodes, adfNode{
			Type:    "paragraph",
			Content: []adfNode{c.boldText(ep.Summary)},
		})
	}

	if ep.Description != "" {
		nodes = append(nodes, c.paragraph(stripHTML(ep.Description)))
	}

	if len(view.Parameters) > 0 || len(view.Request) > 0 {
		nodes = append(nodes, c.heading("REQUEST", 5))

		if len(view.Parameters) > 0 {
			rows := make([][]adfNode, 0, len(view.Parameters))
			for _, p := range view.Parameters {
				name := c.codeText(p.Name)
				if p.Required {
					name.Marks = append(name.Marks, adfMark{Type: "strong"})
				}
				rows = append(rows, []adfNode{
					name,
					c.text(locationLabel(p.In)),
					c.text(parameterType(p)),
					c.text(requiredLabel(p.Required)),
					c.text(stripHTML(p.Description)),
				})
			}
			nodes = append(nodes, c.table([]string{"Name", "In", "Type", "Required", "Description"}, rows))
		}

		for _, table := range view.Request {
			nodes = append(nodes, c.paragraph(table.Caption), c.fieldTable(table.Fields))
		}
	}

	if len(view.Responses) > 0 {
		nodes = append(nodes, c.heading("RESPONSE", 5))

		for _, resp := range view.Responses {
			nodes = append(nodes, adfNode{
				Type:    "paragraph",
				Content: []adfNode{c.boldText(fmt.Sprintf("STATUS CODE - %s:", resp.Status))},
			})
			if resp.Model != nil {
				if resp.Description != "" {
					nodes = append(nodes, c.paragraph(stripHTML(resp.Description)))
				}
				nodes = append(nodes, c.paragraph(resp.Model.Caption), c.fieldTable(resp.Model.Fields))
				continue
			}
			nodes = append(nodes, c.table([]string{"Status", "Type", "Description"}, [][]adfNode{{
				c.codeText(resp.Status),
				c.text(resp.Type),
				c.text(stripHTML(resp.Description)),
			}}))
		}
	}

	nodes = append(nodes, adfNode{Type: "rule"})

	return nodes
}

func (c *ADFConverter) fieldTable(fields []domain.ExpandedField) adfNode {
	rows := make([][]adfNode, 0, len(fields))
	for _, f := range fields {
		name := c.codeText(strings.Repeat("\u00a0\u00a0", f.Level) + fieldName(f))
		if f.Required {
			name.Marks = append(name.Marks, adfMark{Type: "strong"})
		}
		rows = append(rows, []adfNode{name, c.text(f.Type), c.text(stripHTML(f.Description))})
	}
	return c.table([]string{"Field", "Type", "Description"}, rows)
}

// table builds an ADF table. Each row holds one inline node per column;
// a text node with empty text is rendered as an empty cell.
func (c *ADFConverter) table(headers []string, rows [][]adfNode) adfNode {
	tbl := adfNode{
		Type:  "table",
		Attrs: &adfAttrs{Layout: "default"},
	}

	header := adfNode{Type: "tableRow"}
	for _, h := range headers {
		header.Content = append(header.Content, adfNode{
			Type:    "tableHeader",
			Content: []adfNode{c.paragraph(h)},
		})
	}
	tbl.Content = append(tbl.Content, header)

	for _, cells := range rows {
		row := adfNode{Type: "tableRow"}
		for _, inline := range cells {
			para := adfNode{Type: "paragraph"}
			if inline.Text != "" {
				para.Content = []adfNode{inline}
			}
			row.Content = append(row.Content, adfNode{
				Type:    "tableCell",
				Content: []adfNode{para},
			})
		}
		tbl.Content = append(tbl.Content, row)
	}

	return tbl
}

func (c *ADFConverter) text(s string) adfNode {
	return adfNode{Type: "text", Text: s}
}
