// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine renders landing pages. A document with a blocks array is
// rendered block by block; otherwise the page's template picks one of the
// fixed layouts, whose sections read fixed keys from the content. Markup
// comes from html/template partials compiled into the binary.
package engine

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"landingkit/internal/leadform"
	"landingkit/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mode tells how a document was rendered.
type Mode string

const (
	ModeBlocks   Mode = "blocks"
	ModeLayout   Mode = "layout"
	ModeNotFound Mode = "not_found"
)

// Section is one rendered top-level unit of a page: a layout section or a
// block. Key is the section key or the block type.
type Section struct {
	Key  string
	HTML template.HTML
}

// Document is a rendered page.
type Document struct {
	TemplateID  models.TemplateID
	Mode        Mode
	Title       string
	Description string
	ThemeColor  string
	Sections    []Section
	HTML        template.HTML
}

// Keys returns the section keys in render order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.Key
	}
	return out
}

// Options carries request-specific inputs of a render.
type Options struct {
	// Title overrides the document title (defaults to the template name).
	Title string
	// FormAction is the URL the lead form posts to.
	FormAction string
	// CSRFToken is embedded in the lead form when set.
	CSRFToken string
	// Form is the visitor's form state; nil renders an empty form.
	Form *leadform.View
}

// Engine renders documents. It is safe for concurrent use.
type Engine struct {
	tmpl *template.Template
}

// New parses the embedded partials.
func New() (*Engine, error) {
	t, err := template.New("engine").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Engine{tmpl: t}, nil
}

// MustNew is New for package initialization; it panics on error.
func MustNew() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

// Render turns a template, its content and the owning professional into a
// document. An unknown template id yields a ModeNotFound document, not an
// error; errors are reserved for template execution failures.
func (e *Engine) Render(t models.Template, c models.Content, pro models.Professional, opts Options) (*Document, error) {
	doc := &Document{
		TemplateID:  t.ID,
		Title:       opts.Title,
		Description: c.Subheadline,
		ThemeColor:  c.ThemeColor,
	}
	if doc.Title == "" {
		doc.Title = t.Name
	}

	form := e.formData(c.FormConfig, t.ID, opts)

	if c.HasBlocks() {
		doc.Mode = ModeBlocks
		for i, b := range c.Blocks {
			html, ok, err := e.renderBlock(b, form)
			if err != nil {
				return nil, fmt.Errorf("render block %d (%s): %w", i, b.Type, err)
			}
			if !ok {
				slog.Debug("skipping unknown block type", "template", t.ID, "index", i, "type", b.Type)
				continue
			}
			doc.Sections = append(doc.Sections, Section{Key: string(b.Type), HTML: html})
		}
		return e.finish(doc, t.ID)
	}

	layout, ok := layouts[t.ID]
	if !ok {
		return e.NotFound(t.ID)
	}
	doc.Mode = ModeLayout
	for _, spec := range layout {
		html, err := e.renderSection(spec, c, pro, form)
		if err != nil {
			return nil, fmt.Errorf("render section %s: %w", spec.key, err)
		}
		doc.Sections = append(doc.Sections, Section{Key: spec.key, HTML: html})
	}
	return e.finish(doc, t.ID)
}

// NotFound renders the placeholder shown for pages whose template does not
// exist.
func (e *Engine) NotFound(id models.TemplateID) (*Document, error) {
	html, err := e.exec("notfound", string(id))
	if err != nil {
		return nil, err
	}
	doc := &Document{
		TemplateID: id,
		Mode:       ModeNotFound,
		Title:      "Template not found",
		Sections:   []Section{{Key: "not-found", HTML: html}},
	}
	return e.finish(doc, id)
}

type pageData struct {
	Lang        string
	Title       string
	Description string
	Mode        Mode
	TemplateID  models.TemplateID
	ThemeColor  string
	Sections    []Section
}

func (e *Engine) finish(doc *Document, id models.TemplateID) (*Document, error) {
	lang := "en"
	if id == models.TemplateLatinoUSA {
		lang = "es"
	}
	html, err := e.exec("page", pageData{
		Lang:        lang,
		Title:       doc.Title,
		Description: doc.Description,
		Mode:        doc.Mode,
		TemplateID:  doc.TemplateID,
		ThemeColor:  doc.ThemeColor,
		Sections:    doc.Sections,
	})
	if err != nil {
		return nil, err
	}
	doc.HTML = html
	return doc, nil
}

func (e *Engine) exec(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
