// Package web holds the embedded page templates and static assets of the
// salon site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"index", "booking"}

var funcs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	"fmtDate": func(t time.Time) string {
		return t.Format("Mon, 02 Jan 2006 at 15:04")
	},
}

// Pages renders the site's HTML pages. Each page is parsed together with the
// shared layout.
type Pages struct {
	templates map[string]*template.Template
}

func NewPages() (*Pages, error) {
	p := &Pages{templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		p.templates[name] = tmpl
	}
	return p, nil
}

func (p *Pages) Render(w io.Writer, page string, data any) error {
	tmpl, ok := p.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	return nil
}

// Static serves /css, /js and /images from the embedded static tree.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
