// Package web renders server-side HTML pages from pre-parsed Go templates.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// PageDef names a page template and its default title.
type PageDef struct {
	Template string
	Title    string
}

// PageData is passed to every page template. BasePath lets templates build
// links relative to the mount prefix via {{ .BasePath }}.
type PageData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds one parsed template tree per page, each cloned from the
// shared layouts.
type TemplateSet struct {
	pages    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layouts matching layoutGlob and clones them for
// each page found under pageDir. Parse errors surface at startup.
func NewTemplateSet(fsys fs.FS, layoutGlob, pageDir, basePath string, pages []PageDef) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	pageFS, err := fs.Sub(fsys, pageDir)
	if err != nil {
		return nil, err
	}

	set := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", p.Template, err)
		}
		if _, err := t.ParseFS(pageFS, p.Template); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p.Template, err)
		}
		set[p.Template] = t
	}

	return &TemplateSet{
		pages:    set,
		basePath: basePath,
	}, nil
}

func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes layout for page into a buffer and writes it with status.
// Nothing is written when execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout string, page PageDef, data any) error {
	t, ok := ts.pages[page.Template]
	if !ok {
		return fmt.Errorf("template not found: %s", page.Template)
	}

	var buf bytes.Buffer
	pd := PageData{Title: page.Title, BasePath: ts.basePath, Data: data}
	if err := t.ExecuteTemplate(&buf, layout, pd); err != nil {
		return fmt.Errorf("execute %s: %w", page.Template, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}
