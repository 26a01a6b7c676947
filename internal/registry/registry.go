// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package registry holds the fixed set of landing page templates. It is a
// read-only lookup table built once at startup; every accessor returns
// deep copies so callers can never mutate the shared defaults.
package registry

import (
	"fmt"

	"landingkit/internal/models"
)

// ErrNotFound is returned by Lookup for identifiers outside the registry.
var ErrNotFound = fmt.Errorf("template %w", models.ErrNotFound)

// Registry maps template identifiers to their definitions.
type Registry struct {
	order []models.TemplateID
	byID  map[models.TemplateID]models.Template
}

// New builds the registry from the built-in template definitions.
func New() *Registry {
	return newRegistry(builtinTemplates())
}

func newRegistry(templates []models.Template) *Registry {
	r := &Registry{
		order: make([]models.TemplateID, 0, len(templates)),
		byID:  make(map[models.TemplateID]models.Template, len(templates)),
	}
	for _, t := range templates {
		if _, dup := r.byID[t.ID]; dup {
			panic(fmt.Sprintf("registry: duplicate template %q", t.ID))
		}
		r.order = append(r.order, t.ID)
		r.byID[t.ID] = t
	}
	return r
}

// Lookup returns the template with the given id, or ErrNotFound. Unknown
// ids never yield a zero or default template.
func (r *Registry) Lookup(id models.TemplateID) (models.Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return models.Template{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return copyTemplate(t), nil
}

// All returns every template in declaration order.
func (r *Registry) All() []models.Template {
	out := make([]models.Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyTemplate(r.byID[id]))
	}
	return out
}

func copyTemplate(t models.Template) models.Template {
	t.DefaultContent = t.DefaultContent.Clone()
	return t
}
