package converters

import (
	"fmt"
	"io"

	"github.com/GabrielNunesIT/openapi-report/internal/domain"
	"github.com/GabrielNunesIT/openapi-report/internal/expand"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFormat       = "pdf"
	pdfPageWidth    = 190.0
	pdfMarginLeft   = 10.0
	pdfMarginTop    = 10.0
	pdfMarginRight  = 10.0
	pdfLineHeight   = 5.0
	pdfFieldIndent  = 4.0
	pdfLargeTable   = 20
	pdfTitleMaxRune = 60
)

var methodColors = map[string][3]int{
	"GET":     {97, 175, 254},  // Blue
	"POST":    {73, 204, 144},  // Green
	"PUT":     {252, 161, 48},  // Orange
	"DELETE":  {249, 62, 62},   // Red
	"PATCH":   {80, 227, 194},  // Teal
	"HEAD":    {144, 97, 249},  // Purple
	"OPTIONS": {128, 128, 128}, // Gray
	"TRACE":   {128, 128, 128},
}

// PDFConverter renders reports to PDF.
type PDFConverter struct {
	expander *expand.Expander

	pdf            *gofpdf.Fpdf
	tr             func(string) string
	report         *domain.Report
	tocItems       []tocItem
	componentLinks map[string]int // "group:definition" to link ID
	currentGroup   string
}

type tocItem struct {
	title  string
	level  int
	linkID int
}

// cell is one table cell. Indent shifts the text right within the cell.
type cell struct {
	text   string
	align  string
	link   int
	indent float64
	bold   bool
}

// NewPDFConverter creates a PDF converter expanding schemas with exp.
func NewPDFConverter(exp *expand.Expander) *PDFConverter {
	return &PDFConverter{expander: expanderOr(exp)}
}

// Format returns the output format name.
func (c *PDFConverter) Format() string {
	return pdfFormat
}

// Convert renders the report as PDF.
func (c *PDFConverter) Convert(report *domain.Report, output io.Writer) error {
	c.pdf = gofpdf.New("P", "mm", "A4", "")
	c.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	c.pdf.SetDrawColor(180, 180, 180)
	c.pdf.SetTitle(report.Title+" API Documentation", true)
	c.pdf.AliasNbPages("")
	c.tr = c.pdf.UnicodeTranslatorFromDescriptor("")
	c.report = report
	c.tocItems = nil
	c.componentLinks = make(map[string]int)
	c.currentGroup = ""

	c.pdf.SetFooterFunc(func() {
		c.pdf.SetY(-15)
		c.pdf.SetFont("Arial", "", 8)
		c.pdf.SetTextColor(107, 114, 128)
		footer := fmt.Sprintf("%s API Documentation Page %d of {nb}", report.Title, c.pdf.PageNo())
		c.pdf.CellFormat(0, 10, c.tr(footer), "", 0, "C", false, 0, "")
		c.pdf.SetTextColor(0, 0, 0)
	})

	c.collectTOC()
	c.addTitlePage()
	c.addTableOfContents()
	c.addContent()

	return c.pdf.Output(output)
}

func (c *PDFConverter) collectTOC() {
	c.tocItems = append(c.tocItems, tocItem{title: "Overview", level: 1, linkID: c.pdf.AddLink()})

	if len(c.report.Servers) > 0 {
		c.tocItems = append(c.tocItems, tocItem{title: "Servers", level: 1, linkID: c.pdf.AddLink()})
	}

	for _, group := range c.report.Groups {
		for _, name := range usedDefinitions(group.Endpoints, c.report.Definitions) {
			c.componentLinks[group.Name+":"+name] = c.pdf.AddLink()
		}
	}

	c.tocItems = append(c.tocItems, tocItem{title: "API List", level: 1, linkID: c.pdf.AddLink()})

	for _, group := range c.report.Groups {
		c.tocItems = append(c.tocItems, tocItem{title: group.Name, level: 2, linkID: c.pdf.AddLink()})

		for _, ep := range group.Endpoints {
			title := fmt.Sprintf("%s %s", formatMethod(ep.Method), ep.Path)
			c.tocItems = append(c.tocItems, tocItem{title: title, level: 3, linkID: c.pdf.AddLink()})
		}
	}
}

func (c *PDFConverter) addTitlePage() {
	c.pdf.AddPage()

	c.pdf.SetFont("Arial", "B", 28)
	c.pdf.SetTextColor(31, 41, 55)
	c.pdf.Ln(40)
	c.pdf.MultiCell(pdfPageWidth, 15, c.tr(c.report.Title), "", "C", false)
	c.pdf.Ln(5)

	c.pdf.SetFont("Arial", "", 14)
	c.pdf.SetTextColor(107, 114, 128)
	c.pdf.CellFormat(pdfPageWidth, 8, c.tr("Version "+c.report.Version), "", 1, "C", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Ln(20)

	if c.report.Description != "" {
		c.pdf.SetFont("Arial", "", 11)
		c.pdf.MultiCell(pdfPageWidth, 6, c.tr(stripHTML(c.report.Description)), "", "C", false)
	}

	c.pdf.Ln(30)

	c.pdf.SetFont("Arial", "", 10)
	c.pdf.SetTextColor(128, 128, 128)
	label := "API Specification Document"
	if c.report.SpecVersion != "" {
		label = fmt.Sprintf("API Specification Document (%s)", c.report.SpecVersion)
	}
	c.pdf.CellFormat(pdfPageWidth, 6, label, "", 1, "C", false, 0, "")
	if c.report.Filter != nil {
		c.pdf.CellFormat(pdfPageWidth, 6,
			fmt.Sprintf("Filtered: %d of %d endpoints", c.report.Filter.Matched, c.report.Filter.Total),
			"", 1, "C", false, 0, "")
	}
	c.pdf.SetTextColor(0, 0, 0)
}

func (c *PDFConverter) addTableOfContents() {
	c.pdf.AddPage()

	c.pdf.SetFont("Arial", "B", 20)
	c.pdf.CellFormat(pdfPageWidth, 10, "Table of Contents", "", 1, "", false, 0, "")
	c.pdf.Ln(8)

	for _, item := range c.tocItems {
		indent := float64(item.level-1) * 8

		switch item.level {
		case 1:
			c.pdf.SetFont("Arial", "B", 12)
		case 2:
			c.pdf.SetFont("Arial", "B", 10)
		default:
			c.pdf.SetFont("Arial", "", 9)
		}

		c.pdf.SetX(pdfMarginLeft + indent)
		title := truncate(item.title, pdfTitleMaxRune)
		c.pdf.CellFormat(pdfPageWidth-indent, pdfLineHeight, c.tr(title), "", 1, "", false, item.linkID, "")
	}
}

func (c *PDFConverter) addContent() {
	tocIndex := 0

	c.pdf.AddPage()
	c.setLinkDest(tocIndex)
	tocIndex++

	c.addSectionHeader("Overview")
	c.addOverview()

	if len(c.report.Servers) > 0 {
		c.checkPageBreak(40)
		c.setLinkDest(tocIndex)
		tocIndex++

		c.addSectionHeader("Servers")

		for _, server := range c.report.Servers {
			c.pdf.SetFont("Arial", "B", 10)
			c.pdf.SetTextColor(0, 102, 204)
			c.pdf.CellFormat(pdfPageWidth, 6, c.tr(server.URL), "", 1, "", false, 0, "")
			c.pdf.SetTextColor(0, 0, 0)

			if server.Description != "" {
				c.pdf.SetFont("Arial", "", 9)
				c.pdf.SetTextColor(100, 100, 100)
				c.pdf.MultiCell(pdfPageWidth, 4, c.tr(server.Description), "", "", false)
				c.pdf.SetTextColor(0, 0, 0)
			}
			c.pdf.Ln(2)
		}
		c.pdf.Ln(4)
	}

	c.pdf.AddPage()
	c.setLinkDest(tocIndex)
	tocIndex++

	c.addSectionHeader("API List")
	c.pdf.Ln(4)

	if len(c.report.Groups) == 0 {
		c.pdf.SetFont("Arial", "I", 10)
		c.pdf.CellFormat(pdfPageWidth, 6, "No endpoints to document.", "", 1, "", false, 0, "")
		return
	}

	for _, group := range c.report.Groups {
		c.pdf.AddPage()
		c.setLinkDest(tocIndex)
		tocIndex++

		// Group header
		c.pdf.SetFont("Arial", "B", 16)
		c.pdf.SetFillColor(124, 58, 237)
		c.pdf.SetTextColor(255, 255, 255)
		c.pdf.CellFormat(pdfPageWidth, 9, c.tr(" "+group.Name), "", 1, "", true, 0, "")
		c.pdf.SetTextColor(0, 0, 0)
		c.pdf.Ln(4)

		c.currentGroup = group.Name

		if desc := c.report.TagDescription(group.Name); desc != "" {
			c.pdf.SetFont("Arial", "", 10)
			c.pdf.MultiCell(pdfPageWidth, 5, c.tr(stripHTML(desc)), "", "", false)
			c.pdf.Ln(4)
		}

		c.addEndpointsSummary(group.Endpoints, tocIndex)
		c.pdf.Ln(6)

		for _, ep := range group.Endpoints {
			c.checkPageBreak(50)
			c.setLinkDest(tocIndex)
			tocIndex++

			c.addEndpoint(buildEndpointView(ep, c.report.Definitions, c.expander))
		}

		if names := usedDefinitions(group.Endpoints, c.report.Definitions); len(names) > 0 {
			c.pdf.Ln(6)
			c.pdf.Line(pdfMarginLeft, c.pdf.GetY(), pdfMarginLeft+pdfPageWidth, c.pdf.GetY())
			c.pdf.Ln(6)
			c.addGroupDefinitions(group.Name, names)
		}

		c.pdf.Ln(4)
	}
}

func (c *PDFConverter) addOverview() {
	c.pdf.SetFont("Arial", "", 10)
	if c.report.Description != "" {
		c.pdf.MultiCell(pdfPageWidth, 5, c.tr(stripHTML(c.report.Description)), "", "", false)
		c.pdf.Ln(4)
	}

	widths := []float64{50, 140}
	rows := [][2]string{
		{"Title", c.report.Title},
		{"Version", c.report.Version},
		{"Endpoints", fmt.Sprint(c.report.EndpointCount())},
		{"Groups", fmt.Sprint(len(c.report.Groups))},
	}
	if c.report.SpecVersion != "" {
		rows = append(rows, [2]string{"Format", string(c.report.SpecVersion)})
	}
	if f := c.report.Filter; f != nil {
		rows = append(rows, [2]string{"Filter", fmt.Sprintf("%d of %d endpoints matched, %d skipped", f.Matched, f.Total, len(f.SkippedAPIs))})
	}

	c.pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		c.addTableRow(widths, []cell{{text: row[0], bold: true}, {text: row[1]}})
	}
	c.pdf.Ln(4)
}

func (c *PDFConverter) setLinkDest(tocIndex int) {
	if tocIndex < len(c.tocItems) {
		c.pdf.SetLink(c.tocItems[tocIndex].linkID, -1, -1)
	}
}

func (c *PDFConverter) addSectionHeader(title string) {
	c.pdf.SetFont("Arial", "B", 18)
	c.pdf.CellFormat(pdfPageWidth, 10, title, "", 1, "", false, 0, "")
	c.pdf.Ln(4)
}

func (c *PDFConverter) addEndpoint(view endpointView) {
	ep := view.Endpoint
	method := formatMethod(ep.Method)

	// Method badge
	c.pdf.SetFont("Arial", "B", 11)
	color, ok := methodColors[method]
	if !ok {
		color = [3]int{128, 128, 128}
	}

	c.pdf.SetFillColor(color[0], color[1], color[2])
	c.pdf.SetTextColor(255, 255, 255)
	methodWidth := float64(len(method)*3) + 8
	c.pdf.CellFormat(methodWidth, 7, method, "", 0, "C", true, 0, "")

	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.SetFont("Courier", "B", 11)
	c.pdf.CellFormat(pdfPageWidth-methodWidth, 7, c.tr(" "+ep.Path), "", 1, "", false, 0, "")
	c.pdf.Ln(2)

	if ep.OperationID != "" {
		c.pdf.SetFont("Arial", "", 8)
		c.pdf.SetTextColor(128, 128, 128)
		c.pdf.CellFormat(pdfPageWidth, 4, c.tr("Operation ID: "+ep.OperationID), "", 1, "", false, 0, "")
		c.pdf.SetTextColor(0, 0, 0)
	}

	if ep.Deprecated {
		c.pdf.SetFont("Arial", "B", 8)
		c.pdf.SetTextColor(220, 38, 38)
		c.pdf.CellFormat(pdfPageWidth, 4, "DEPRECATED", "", 1, "", false, 0, "")
		c.pdf.SetTextColor(0, 0, 0)
	}

	if ep.Summary != "" {
		c.pdf.SetFont("Arial", "B", 10)
		c.pdf.MultiCell(pdfPageWidth, 5, c.tr(stripHTML(ep.Summary)), "", "", false)
	}

	if ep.Description != "" {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.MultiCell(pdfPageWidth, 4, c.tr(stripHTML(ep.Description)), "", "", false)
	}
	c.pdf.Ln(2)

	apiInfo := fmt.Sprintf("[%s %s]", method, ep.Path)

	if len(view.Parameters) > 0 || len(view.Request) > 0 {
		c.addSubHeader("REQUEST")
		if len(view.Parameters) > 0 {
			c.addParameterTable(view.Parameters)
		}
		for _, table := range view.Request {
			c.addCaption(table.Caption)
			c.addFieldTable(apiInfo+" REQUEST", table.Fields)
		}
	}

	if len(view.Responses) > 0 {
		c.addSubHeader("RESPONSE")
		for _, resp := range view.Responses {
			c.checkPageBreak(20)
			c.pdf.SetFont("Arial", "B", 9)
			c.pdf.CellFormat(pdfPageWidth, 5, c.tr(fmt.Sprintf("STATUS CODE - %s:", resp.Status)), "", 1, "", false, 0, "")
			if resp.Model != nil {
				if resp.Description != "" {
					c.pdf.SetFont("Arial", "", 9)
					c.pdf.MultiCell(pdfPageWidth, 4, c.tr(stripHTML(resp.Description)), "", "", false)
				}
				c.addCaption(resp.Model.Caption)
				c.addFieldTable(apiInfo+" RESPONSE", resp.Model.Fields)
				continue
			}
			c.addResponseTable(resp)
		}
	}

	// Separator
	c.pdf.Ln(2)
	c.pdf.SetDrawColor(220, 220, 220)
	c.pdf.Line(pdfMarginLeft, c.pdf.GetY(), pdfMarginLeft+pdfPageWidth, c.pdf.GetY())
	c.pdf.SetDrawColor(180, 180, 180)
	c.pdf.Ln(6)
}

func (c *PDFConverter) addSubHeader(title string) {
	c.checkPageBreak(20)
	c.pdf.Ln(2)
	c.pdf.SetFont("Arial", "B", 12)
	c.pdf.SetTextColor(75, 85, 99)
	c.pdf.CellFormat(pdfPageWidth, 7, title, "", 1, "", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
}

func (c *PDFConverter) addCaption(caption string) {
	c.pdf.SetFont("Arial", "B", 8)
	c.pdf.SetTextColor(107, 114, 128)
	c.pdf.CellFormat(pdfPageWidth, 5, c.tr(caption), "", 1, "", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
}

func (c *PDFConverter) addTableHeader(colWidths []float64, headers []string) {
	c.pdf.SetFont("Arial", "B", 8)
	c.pdf.SetFillColor(31, 41, 55)
	c.pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		c.pdf.CellFormat(colWidths[i], 6, header, "1", 0, "", true, 0, "")
	}
	c.pdf.Ln(-1)
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.SetFont("Arial", "", 8)
}

func (c *PDFConverter) addParameterTable(params []domain.EndpointParameter) {
	colWidths := []float64{35, 22, 35, 15, 83}
	c.checkPageBreak(20)
	c.addTableHeader(colWidths, []string{"Name", "In", "Type", "Required", "Description"})

	for _, p := range params {
		c.addTableRow(colWidths, []cell{
			{text: p.Name, bold: p.Required},
			{text: locationLabel(p.In)},
			{text: parameterType(p), link: c.definitionLink(parameterType(p))},
			{text: requiredLabel(p.Required), align: "C"},
			{text: stripHTML(p.Description)},
		})
	}
	c.pdf.Ln(3)
}

// addFieldTable renders expanded fields with a caption row. Required fields
// are bold and nested fields indented by level.
func (c *PDFConverter) addFieldTable(title string, fields []domain.ExpandedField) {
	colWidths := []float64{57, 38, 95}

	if len(fields)+2 > pdfLargeTable {
		c.checkPageBreak(60)
	} else {
		c.checkPageBreak(float64(len(fields)+2) * pdfLineHeight)
	}

	c.pdf.SetFont("Arial", "B", 8)
	c.pdf.CellFormat(pdfPageWidth, 6, c.tr(title), "", 1, "C", false, 0, "")
	c.addTableHeader(colWidths, []string{"Field", "Type", "Description"})

	for _, f := range fields {
		c.addTableRow(colWidths, []cell{
			{text: fieldName(f), indent: float64(f.Level) * pdfFieldIndent, bold: f.Required},
			{text: f.Type, link: c.definitionLink(f.Type)},
			{text: stripHTML(f.Description)},
		})
	}
	c.pdf.Ln(3)
}

func (c *PDFConverter) addResponseTable(resp responseView) {
	colWidths := []float64{25, 45, 120}
	c.addTableHeader(colWidths, []string{"Status", "Type", "Description"})
	c.addTableRow(colWidths, []cell{
		{text: resp.Status, align: "C"},
		{text: resp.Type, link: c.definitionLink(resp.Type)},
		{text: stripHTML(resp.Description)},
	})
	c.pdf.Ln(3)
}

// definitionLink returns the link to a definition rendered in the current group, if any.
func (c *PDFConverter) definitionLink(name string) int {
	return c.componentLinks[c.currentGroup+":"+name]
}

func (c *PDFConverter) checkPageBreak(height float64) {
	_, pageHeight := c.pdf.GetPageSize()
	_, _, _, bottomMargin := c.pdf.GetMargins()

	if c.pdf.GetY()+height > pageHeight-bottomMargin-10 {
		c.pdf.AddPage()
	}
}

func (c *PDFConverter) addDefinition(name string, schema *domain.Schema) {
	c.pdf.SetFont("Arial", "B", 12)
	c.pdf.CellFormat(pdfPageWidth, 7, c.tr(name), "", 1, "", false, 0, "")

	info := expand.TypeInfo(schema)
	if info.Type != "" && info.Type != "object" {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.CellFormat(pdfPageWidth, 5, c.tr("Type: "+info.Type), "", 1, "", false, 0, "")
	}

	if schema.Description != "" {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.SetTextColor(100, 100, 100)
		c.pdf.MultiCell(pdfPageWidth, 4, c.tr(stripHTML(schema.Description)), "", "", false)
		c.pdf.SetTextColor(0, 0, 0)
	}

	if fields := c.expander.Expand(schema, c.report.Definitions); len(fields) > 0 {
		c.pdf.Ln(2)
		c.addFieldTable(name, fields)
	}

	c.pdf.Ln(6)
}

// addGroupDefinitions renders the definitions used by the group's endpoints.
func (c *PDFConverter) addGroupDefinitions(group string, names []string) {
	c.pdf.SetFont("Arial", "B", 11)
	c.pdf.SetTextColor(60, 60, 60)
	c.pdf.CellFormat(pdfPageWidth, 6, "Objects Used", "", 1, "", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Ln(2)

	for _, name := range names {
		schema, ok := c.report.Definitions[name]
		if !ok || schema == nil {
			continue
		}

		c.checkPageBreak(30)

		if linkID, ok := c.componentLinks[group+":"+name]; ok {
			c.pdf.SetLink(linkID, -1, -1)
		}

		c.addDefinition(name, schema)
	}

	c.pdf.Ln(2)
	c.pdf.Line(pdfMarginLeft, c.pdf.GetY(), pdfMarginLeft+pdfPageWidth, c.pdf.GetY())
	c.pdf.Ln(6)
}

func (c *PDFConverter) addTableRow(colWidths []float64, cells []cell) {
	maxLines := 1
	for i, cl := range cells {
		lines := c.pdf.SplitLines([]byte(c.tr(cl.text)), colWidths[i]-cl.indent)
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}

	rowHeight := float64(maxLines) * pdfLineHeight

	c.checkPageBreak(rowHeight)

	startX := c.pdf.GetX()
	startY := c.pdf.GetY()

	for i, cl := range cells {
		width := colWidths[i]

		if cl.link > 0 {
			c.pdf.SetTextColor(0, 102, 204)
		}
		if cl.bold {
			c.pdf.SetFontStyle("B")
		}

		c.pdf.SetXY(startX+cl.indent, startY)
		c.pdf.MultiCell(width-cl.indent, pdfLineHeight, c.tr(cl.text), "0", cl.align, false)

		if cl.link > 0 {
			c.pdf.Link(startX, startY, width, rowHeight, cl.link)
			c.pdf.SetTextColor(0, 0, 0)
		}
		if cl.bold {
			c.pdf.SetFontStyle("")
		}

		c.pdf.Rect(startX, startY, width, rowHeight, "D")
		startX += width
	}

	c.pdf.SetXY(pdfMarginLeft, startY+rowHeight)
}

func (c *PDFConverter) addEndpointsSummary(endpoints []domain.Endpoint, startTocIndex int) {
	if len(endpoints) == 0 {
		return
	}

	c.pdf.SetFont("Arial", "B", 11)
	c.pdf.CellFormat(pdfPageWidth, 6, "Endpoints in this section", "", 1, "", false, 0, "")
	c.pdf.Ln(2)

	colWidths := []float64{100, 72, 18}
	c.addTableHeader(colWidths, []string{"Summary", "Path", "Method"})

	c.pdf.SetFont("Arial", "", 9)
	tocIndex := startTocIndex

	for _, ep := range endpoints {
		var linkID int
		if tocIndex < len(c.tocItems) {
			linkID = c.tocItems[tocIndex].linkID
		}

		c.addTableRow(colWidths, []cell{
			{text: truncate(stripHTML(ep.Summary), pdfTitleMaxRune), link: linkID},
			{text: ep.Path, link: linkID},
			{text: formatMethod(ep.Method), align: "C", link: linkID},
		})
		tocIndex++
	}
}
