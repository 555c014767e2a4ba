package app

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"

	"github.com/simp-lee/gohotel/internal/domain"
)

const templateRoot = "templates"

// sharedDirs hold the base layout and partials every page is parsed on top of.
var sharedDirs = []string{"layouts", "partials"}

// TemplateRenderer renders the pages under templates/. A page is addressed by
// its path relative to templates/, e.g. "client/list.html", and only defines
// the "title" and "content" blocks the base layout calls.
//
// In debug mode the set is rebuilt on every render so template edits show up
// without a restart.
type TemplateRenderer struct {
	fs        fs.FS
	funcs     template.FuncMap
	debug     bool
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*TemplateRenderer)(nil)

// NewTemplateRenderer reads templates/ from fsys. Outside debug mode every
// page is compiled up front and the first parse error is returned.
func NewTemplateRenderer(fsys fs.FS, debug bool) (*TemplateRenderer, error) {
	r := &TemplateRenderer{fs: fsys, funcs: templateFuncMap(), debug: debug}
	if debug {
		return r, nil
	}
	set, err := r.compile()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.templates = set
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *TemplateRenderer) Instance(name string, data any) render.Render {
	set := r.templates
	if r.debug {
		var err error
		if set, err = r.compile(); err != nil {
			return &HTMLInstance{page: name, err: err}
		}
	}
	return &HTMLInstance{set: set[name], page: name, data: data}
}

// compile parses the shared files once and clones them for each page.
func (r *TemplateRenderer) compile() (map[string]*template.Template, error) {
	shared, pages, err := r.discoverPageTemplates()
	if err != nil {
		return nil, err
	}

	base := template.New("").Funcs(r.funcs)
	for _, file := range shared {
		if err := r.parseInto(base, file, file); err != nil {
			return nil, err
		}
	}

	set := make(map[string]*template.Template, len(pages))
	for _, file := range pages {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", file, err)
		}
		name := strings.TrimPrefix(file, templateRoot+"/")
		if err := r.parseInto(page, name, file); err != nil {
			return nil, err
		}
		set[name] = page
	}
	return set, nil
}

func (r *TemplateRenderer) parseInto(t *template.Template, name, file string) error {
	src, err := fs.ReadFile(r.fs, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	if _, err := t.New(name).Parse(string(src)); err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}
	return nil
}

// discoverPageTemplates splits the .html files under templates/ into shared
// files and pages. Shared files come back layouts first.
func (r *TemplateRenderer) discoverPageTemplates() (shared, pages []string, err error) {
	byDir := make(map[string][]string, len(sharedDirs))
	err = fs.WalkDir(r.fs, templateRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" {
			return err
		}
		top, _, _ := strings.Cut(strings.TrimPrefix(p, templateRoot+"/"), "/")
		for _, dir := range sharedDirs {
			if top == dir {
				byDir[dir] = append(byDir[dir], p)
				return nil
			}
		}
		pages = append(pages, p)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("discover templates: %w", err)
	}
	for _, dir := range sharedDirs {
		shared = append(shared, byDir[dir]...)
	}
	return shared, pages, nil
}

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"json":       toJS,
		"formatDate": formatDate,
		"formatTime": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
		"yesNo": func(b bool) string {
			if b {
				return "oui"
			}
			return "non"
		},
	}
}

// toJS embeds v in a script context.
func toJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}

func formatDate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

// HTMLInstance renders one page of a compiled set.
type HTMLInstance struct {
	set  *template.Template
	page string
	data any
	err  error
}

// Render implements render.Render.
func (h *HTMLInstance) Render(w http.ResponseWriter) error {
	h.WriteContentType(w)
	switch {
	case h.err != nil:
		return h.err
	case h.set == nil:
		return fmt.Errorf("template %q not found", h.page)
	}
	return h.set.ExecuteTemplate(w, h.page, h.data)
}

// WriteContentType sets an HTML content type unless one is already present.
func (h *HTMLInstance) WriteContentType(w http.ResponseWriter) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
}
