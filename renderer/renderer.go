// Package renderer turns moneywise datasets into markdown reports, and
// markdown into terminal or HTML output.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderDiagnostics renders the validation errors of a dataset.
func RenderDiagnostics(d *Diagnostics) string {
	return renderTemplate("diagnostics", "diagnostics.md", d)
}

// RenderCategories renders a category tree.
func RenderCategories(t *CategoryTree) string {
	return renderTemplate("categories", "categories.md", t)
}

// RenderPairs renders the interned asset pairs.
func RenderPairs(t *PairTable) string {
	return renderTemplate("pairs", "pairs.md", t)
}

// RenderLegality renders the legality of every transaction category between
// two assets.
func RenderLegality(t *LegalityTable) string {
	return renderTemplate("legal", "legal.md", t)
}

// renderTemplate renders a single template file. Errors are rendered in place
// of the report.
func renderTemplate(templateName, file string, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}

	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
