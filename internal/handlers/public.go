// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"landingkit/internal/content"
	"landingkit/internal/engine"
	"landingkit/internal/leadform"
	"landingkit/internal/metrics"
	"landingkit/internal/middleware"
	"landingkit/internal/models"
	"landingkit/internal/slug"
)

// csrfPlaceholder stands in for the visitor's CSRF token in cached HTML.
// It is replaced on every response so cached pages are shared safely.
const csrfPlaceholder = "__LK_CSRF__"

// PageFinder loads a public page with its owner. A missing page is
// (nil, nil).
type PageFinder interface {
	FindBySlugWithOwner(ctx context.Context, slug string) (*models.PageWithOwner, error)
}

// TemplateLookup resolves templates.
type TemplateLookup interface {
	Lookup(id models.TemplateID) (models.Template, error)
}

// PageCache stores rendered public pages. A render is stored only if the
// page was not invalidated since its generation was read.
type PageCache interface {
	Get(ctx context.Context, slug string) ([]byte, bool)
	Generation(ctx context.Context, slug string) (uint64, bool)
	SetIfCurrent(ctx context.Context, slug string, html []byte, gen uint64) bool
}

// LeadIntake hands out submitters bound to a page.
type LeadIntake interface {
	ForPage(pageID uuid.UUID) leadform.Submitter
}

// Public serves landing pages to visitors. Rendered pages are cached in
// Valkey; concurrent misses for the same slug share one render.
type Public struct {
	engine    *engine.Engine
	pages     PageFinder
	templates TemplateLookup
	leads     LeadIntake
	cache     PageCache
	group     singleflight.Group
}

// NewPublic creates the public handler group. cache may be nil.
func NewPublic(eng *engine.Engine, pages PageFinder, templates TemplateLookup, leads LeadIntake, cache PageCache) *Public {
	return &Public{engine: eng, pages: pages, templates: templates, leads: leads, cache: cache}
}

type rendered struct {
	html   []byte
	mode   engine.Mode
	status int
}

// Page renders a landing page by its slug.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pageSlug := chi.URLParam(r, "slug")
	if !slug.Valid(pageSlug) {
		http.NotFound(w, r)
		return
	}

	if p.cache != nil {
		if cached, ok := p.cache.Get(ctx, pageSlug); ok {
			metrics.RendersTotal.WithLabelValues("cached", "hit").Inc()
			p.writeHTML(w, r, http.StatusOK, cached)
			return
		}
	}

	v, err, _ := p.group.Do(pageSlug, func() (any, error) {
		return p.render(context.WithoutCancel(ctx), pageSlug)
	})
	if err != nil {
		slog.Error("render public page failed", "slug", pageSlug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	res := v.(*rendered)
	if res == nil {
		http.NotFound(w, r)
		return
	}
	metrics.RendersTotal.WithLabelValues(string(res.mode), "miss").Inc()
	p.writeHTML(w, r, res.status, res.html)
}

// render builds the cacheable HTML of a page. A missing page yields nil.
func (p *Public) render(ctx context.Context, pageSlug string) (*rendered, error) {
	var (
		gen       uint64
		cacheable bool
	)
	if p.cache != nil {
		gen, cacheable = p.cache.Generation(ctx, pageSlug)
	}

	page, err := p.pages.FindBySlugWithOwner(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	tmpl, err := p.templates.Lookup(page.TemplateType)
	if err != nil {
		doc, err := p.engine.NotFound(page.TemplateType)
		if err != nil {
			return nil, err
		}
		return &rendered{html: []byte(doc.HTML), mode: doc.Mode, status: http.StatusNotFound}, nil
	}

	doc, err := p.renderPage(page, tmpl, csrfPlaceholder, nil)
	if err != nil {
		return nil, err
	}
	html := []byte(doc.HTML)
	if cacheable {
		p.cache.SetIfCurrent(ctx, pageSlug, html, gen)
	}
	return &rendered{html: html, mode: doc.Mode, status: http.StatusOK}, nil
}

func (p *Public) renderPage(page *models.PageWithOwner, tmpl models.Template, token string, form *leadform.View) (*engine.Document, error) {
	c, perr := content.Load(page.Content, tmpl)
	if perr != nil {
		slog.Warn("stored page content unusable, rendering defaults",
			"page_id", page.ID, "reason", perr.Err)
	}
	return p.engine.Render(tmpl, c, page.Owner, engine.Options{
		Title:      page.DisplayTitle(tmpl.Name),
		FormAction: "/" + page.CustomUsername + "/lead",
		CSRFToken:  token,
		Form:       form,
	})
}

// writeHTML sends a page with the visitor's CSRF token filled in.
func (p *Public) writeHTML(w http.ResponseWriter, r *http.Request, status int, html []byte) {
	html = bytes.ReplaceAll(html, []byte(csrfPlaceholder), []byte(middleware.CSRFToken(r)))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(html)
}

// SubmitLead accepts a lead form post. Valid submissions are handed to
// lead intake and answered with a redirect or the confirmation; invalid
// ones re-render the page with the visitor's values and messages.
func (p *Public) SubmitLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pageSlug := chi.URLParam(r, "slug")
	if !slug.Valid(pageSlug) {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	page, err := p.pages.FindBySlugWithOwner(ctx, pageSlug)
	if err != nil {
		slog.Error("find page failed", "slug", pageSlug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if page == nil {
		http.NotFound(w, r)
		return
	}
	tmpl, err := p.templates.Lookup(page.TemplateType)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c, _ := content.Load(page.Content, tmpl)
	form := leadform.New(leadform.Build(c.FormConfig), tmpl.ID, page.UserID, p.leads.ForPage(page.ID))
	values := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		values[name] = r.PostForm.Get(name)
	}
	if err := form.SetValues(values); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	res, err := form.Submit(ctx)
	var verr *leadform.ValidationError
	switch {
	case err == nil && res.RedirectURL != "":
		http.Redirect(w, r, res.RedirectURL, http.StatusSeeOther)
		return
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
	case err != nil:
		slog.Error("lead submission failed", "slug", pageSlug, "error", err)
		status = http.StatusBadGateway
	}

	view := form.View()
	doc, err := p.renderPage(page, tmpl, middleware.CSRFToken(r), &view)
	if err != nil {
		slog.Error("render lead form failed", "slug", pageSlug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(doc.HTML))
}
