// Package adapter provides sanitizers and marker defaults for target document
// formats. A sanitizer escapes every value inserted into the document.
package adapter

import (
	"path/filepath"
	"strings"

	"github.com/benjaminschreck/go-easydata/pkg/easydata"
)

var (
	latexReplacer = strings.NewReplacer(`&`, `\&`, `\n`, `\newline`)
	xmlReplacer   = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
)

// LaTeX escapes ampersands and turns the two character sequence \n into a
// \newline command.
func LaTeX(s string) string {
	return latexReplacer.Replace(s)
}

// XML escapes the five predefined XML entities.
func XML(s string) string {
	return xmlReplacer.Replace(s)
}

// Format bundles what an expansion needs to know about a document type.
type Format struct {
	Name      string
	Markers   string
	Sanitizer easydata.Sanitizer
}

var formats = map[string]Format{
	".tex":  {Name: "latex", Markers: "<@>", Sanitizer: LaTeX},
	".xml":  {Name: "xml", Markers: "(@)", Sanitizer: XML},
	".html": {Name: "xml", Markers: "(@)", Sanitizer: XML},
	".svg":  {Name: "xml", Markers: "(@)", Sanitizer: XML},
}

// ForFile returns the format of a template file judged by its extension. Unknown
// extensions get the default markers and no escaping.
func ForFile(path string) Format {
	if f, ok := formats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return Format{Name: "text", Markers: easydata.DefaultConfig().Markers}
}

// Options returns the expander options selecting the format.
func (f Format) Options() []easydata.Option {
	opts := []easydata.Option{easydata.WithMarkers(f.Markers)}
	if f.Sanitizer != nil {
		opts = append(opts, easydata.WithSanitizer(f.Sanitizer))
	}
	return opts
}
