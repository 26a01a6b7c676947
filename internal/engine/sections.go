// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"html/template"
	"log/slog"
	"strconv"

	"landingkit/internal/icons"
	"landingkit/internal/leadform"
	"landingkit/internal/markdown"
	"landingkit/internal/models"
)

type sectionData struct {
	Key         string
	Kind        string
	Title       string
	Description string
	Items       []itemData
}

type itemData struct {
	Icon        template.HTML
	Title       string
	Description string
	Text        string
	Quote       string
	Author      string
	Role        string
}

// normalizeSection reads the loosely shaped tree stored under a section key.
// An object supplies title, description and items; a bare array is taken
// as the items; a string is taken as the description. Anything else
// renders as an empty body.
func normalizeSection(key, kind string, raw any) sectionData {
	sd := sectionData{Key: key, Kind: kind}
	switch v := raw.(type) {
	case map[string]any:
		sd.Title = text(v["title"])
		sd.Description = text(v["description"])
		sd.Items = normalizeItems(v["items"])
	case []any:
		sd.Items = normalizeItems(v)
	case string:
		sd.Description = v
	}
	return sd
}

func normalizeItems(raw any) []itemData {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]itemData, 0, len(list))
	for _, it := range list {
		switch v := it.(type) {
		case string:
			out = append(out, itemData{Title: v, Text: v})
		case map[string]any:
			item := itemData{
				Icon:        icons.SVG(text(v["icon"])),
				Title:       text(v["title"]),
				Description: text(v["description"]),
				Text:        text(v["text"]),
				Quote:       text(v["quote"]),
				Author:      text(v["author"]),
				Role:        text(v["role"]),
			}
			if item.Text == "" {
				item.Text = item.Title
			}
			out = append(out, item)
		}
	}
	return out
}

// text renders a scalar JSON value as display text.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

type formData struct {
	Action     string
	CSRFToken  string
	Title      string
	SubmitText string
	Notice     string
	Submitted  bool
	Controls   []controlData
}

type controlData struct {
	leadform.Control
	Value string
	Error string
}

// formData merges the form definition with the visitor's state.
func (e *Engine) formData(fc *models.FormConfig, id models.TemplateID, opts Options) formData {
	view := leadform.EmptyView(leadform.Build(fc))
	if opts.Form != nil {
		view = *opts.Form
	}
	fd := formData{
		Action:     opts.FormAction,
		CSRFToken:  opts.CSRFToken,
		Title:      view.Definition.Title,
		SubmitText: view.Definition.SubmitText,
		Notice:     view.Notice,
		Submitted:  view.Status == leadform.StatusSubmitted,
	}
	for _, c := range view.Definition.Controls {
		fd.Controls = append(fd.Controls, controlData{
			Control: c,
			Value:   view.Values[c.Name],
			Error:   view.Errors[c.Name],
		})
	}
	return fd
}

type headerData struct {
	Title    string
	Subtitle string
}

type ctaData struct {
	Title string
	Text  string
	URL   string
	Label string
}

// renderBlock renders one block. ok is false for block types with no
// renderer, which are skipped.
func (e *Engine) renderBlock(b models.Block, form formData) (html template.HTML, ok bool, err error) {
	switch b.Type {
	case models.BlockHeader:
		html, err = e.exec("block-header", headerData{
			Title:    b.String("title"),
			Subtitle: b.String("subtitle"),
		})
	case models.BlockHero:
		html, err = e.exec("block-hero", heroData{
			Headline:    b.String("headline"),
			Subheadline: b.String("subheadline"),
			Image:       b.String("image"),
		})
	case models.BlockForm:
		if title := b.String("title"); title != "" {
			form.Title = title
		}
		html, err = e.exec("block-form", form)
	case models.BlockTestimonials:
		html, err = e.exec("block-testimonials", sectionData{
			Key:   string(b.Type),
			Kind:  kindTestimonials,
			Title: b.String("title"),
			Items: normalizeItems(b.Props["items"]),
		})
	case models.BlockText:
		body, convErr := markdown.ToHTML(b.String("body"))
		if convErr != nil {
			slog.Warn("markdown conversion failed", "error", convErr)
			body = ""
		}
		html, err = e.exec("block-text", template.HTML(body))
	case models.BlockCTA:
		label := b.String("label")
		if label == "" {
			label = "Learn more"
		}
		html, err = e.exec("block-cta", ctaData{
			Title: b.String("title"),
			Text:  b.String("text"),
			URL:   b.String("url"),
			Label: label,
		})
	default:
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}
