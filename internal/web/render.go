package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Model son los atributos que recibe la vista.
type Model map[string]any

// Renderer dibuja una vista por nombre (p.ej. "owners/ownerDetails").
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, model Model) error
}

// HTMLRenderer usa html/template con un layout común y una página por vista.
type HTMLRenderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"add": func(a, b int) int { return a + b },
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	pages := map[string]*template.Template{}

	err := fs.WalkDir(templatesFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layoutFile || !strings.HasSuffix(path, ".html") {
			return nil
		}

		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, layoutFile, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{pages: pages}, nil
}

func (h *HTMLRenderer) Render(w http.ResponseWriter, status int, view string, model Model) error {
	t, ok := h.pages[view]
	if !ok {
		return fmt.Errorf("unknown view %q", view)
	}

	// Render a buffer: si falla no queda media página escrita.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", model); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
