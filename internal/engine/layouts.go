// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"html/template"

	"landingkit/internal/models"
)

// Section kinds. A kind picks the partial used for a section's items.
const (
	kindHero         = "hero"
	kindForm         = "form"
	kindFeatures     = "features"
	kindList         = "list"
	kindSteps        = "steps"
	kindTestimonials = "testimonials"
)

type sectionSpec struct {
	key  string
	kind string
}

// layouts lists the sections of each named layout in render order. Every
// section is always emitted; its body is empty when the key is missing.
var layouts = map[models.TemplateID][]sectionSpec{
	models.TemplateRecruiting: {
		{"hero", kindHero},
		{"whyJoinUs", kindFeatures},
		{"idealCandidate", kindList},
		{"whatWeOffer", kindFeatures},
		{"nextSteps", kindSteps},
		{"form", kindForm},
	},
	models.TemplateClient: {
		{"hero", kindHero},
		{"whatWeDo", kindFeatures},
		{"howItWorks", kindSteps},
		{"whoWeServe", kindFeatures},
		{"form", kindForm},
	},
	models.TemplateHybrid: {
		{"hero", kindHero},
		{"forClients", kindFeatures},
		{"forRecruits", kindFeatures},
		{"whyChooseUs", kindFeatures},
		{"form", kindForm},
	},
	models.TemplateLatinoUSA: {
		{"hero", kindHero},
		{"familySupport", kindFeatures},
		{"services", kindFeatures},
		{"testimonials", kindTestimonials},
		{"form", kindForm},
	},
	models.TemplateInternational: {
		{"hero", kindHero},
		{"globalOpportunity", kindFeatures},
		{"requirements", kindList},
		{"support", kindSteps},
		{"form", kindForm},
	},
}

// LayoutKeys returns the section keys of a template's layout, or nil for
// an unknown template.
func LayoutKeys(id models.TemplateID) []string {
	specs, ok := layouts[id]
	if !ok {
		return nil
	}
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.key
	}
	return out
}

type heroData struct {
	Headline     string
	Subheadline  string
	Image        string
	Professional string
}

func (e *Engine) renderSection(spec sectionSpec, c models.Content, pro models.Professional, form formData) (template.HTML, error) {
	switch spec.kind {
	case kindHero:
		return e.exec("hero", heroData{
			Headline:     c.Headline,
			Subheadline:  c.Subheadline,
			Image:        c.HeroImage,
			Professional: pro.Name(),
		})
	case kindForm:
		return e.exec("form", form)
	default:
		raw, _ := c.Section(spec.key)
		return e.exec("section", normalizeSection(spec.key, spec.kind, raw))
	}
}
