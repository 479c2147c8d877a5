package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a template name and a context mapping into markup.
type Renderer interface {
	Render(w http.ResponseWriter, name string, data map[string]any)
}

// TemplateRenderer is the bundled html/template implementation. Views
// are deliberately plain; the page contract is the data mapping, not
// the markup.
type TemplateRenderer struct {
	tmpl *template.Template
	log  *slog.Logger
}

func NewTemplateRenderer(log *slog.Logger) (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tmpl: tmpl, log: log}, nil
}

// Render executes the named template. The page is buffered so a
// mid-template failure turns into a clean 500 instead of a half page.
func (tr *TemplateRenderer) Render(w http.ResponseWriter, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := tr.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		tr.log.Error("render", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
