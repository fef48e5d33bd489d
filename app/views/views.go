// Package views renders the console's HTML. All templates are embedded at
// build time and parsed once; controllers call Render with the page name
// and its payload.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/smartshop/webapp/internal/auth"
	"github.com/smartshop/webapp/pkg/logger"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f €", v) },
	"date":  formatDate,
	"inc":   func(i int) int { return i + 1 },
	"dec":   func(i int) int { return i - 1 },
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	},
}

var templates = template.Must(
	template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"),
)

// formatDate trims a backend timestamp ("2024-03-01T10:30:00") down to
// minute precision for display. Anything shorter passes through unchanged.
func formatDate(s string) string {
	if len(s) >= 16 {
		return strings.Replace(s[:16], "T", " ", 1)
	}
	return s
}

// Page is the envelope every template receives.
type Page struct {
	Title string
	Auth  auth.State
	Flash string
	Data  interface{}
}

// Render writes the named page. A template failure after headers are out
// cannot be recovered, so it is logged and the remainder dropped.
func Render(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	if p.Auth.Status == "" {
		p.Auth = auth.FromCtx(r.Context())
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, p); err != nil {
		logger.WithCtx(r.Context()).Error("views: render failed", "template", name, "error", err)
	}
}

// RenderError shows the generic error page with a user-visible message.
func RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	Render(w, r, status, "error", Page{Title: "Erreur", Data: message})
}
