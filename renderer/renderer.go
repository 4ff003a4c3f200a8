// Package renderer turns funding reports into markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	preipo "github.com/stupidvibecoder/pre-ipo"
)

//go:embed *.md
var templates embed.FS

// Options holds the configuration used to format amounts.
type Options struct {
	Currency string // ISO code of the currency amounts are expressed in, USD if empty
	Unit     string // suffix appended to amounts, like "B" for billions
}

// RenderReport renders the full report of one entity.
func RenderReport(r *preipo.Report, opts Options) string {
	partials := map[string]string{
		"report_title":   "report_title.md",
		"report_profile": "report_profile.md",
		"report_metrics": "report_metrics.md",
		"report_series":  "report_series.md",
	}
	return renderTemplate("report", "report.md", partials, NewReport(r, opts))
}

// RenderMetrics renders only the metrics section of a report.
func RenderMetrics(r *preipo.Report, opts Options) string {
	return renderTemplate("report_metrics", "report_metrics.md", nil, NewReport(r, opts))
}

// RenderPoints renders a table of cumulative series points.
func RenderPoints(points []preipo.Point, opts Options) string {
	return renderTemplate("report_series", "report_series.md", nil, &Report{Series: seriesRows(points, opts)})
}

// RenderIndex renders a table summarizing every analyzed entity.
func RenderIndex(as []preipo.Analysis, profiles preipo.Profiles, opts Options) string {
	return renderTemplate("index", "index.md", nil, NewIndex(as, profiles, opts))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
