// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// TemplateID identifies one of the fixed landing page templates.
type TemplateID string

const (
	TemplateRecruiting    TemplateID = "recruiting"
	TemplateClient        TemplateID = "client"
	TemplateHybrid        TemplateID = "hybrid"
	TemplateLatinoUSA     TemplateID = "latino_usa"
	TemplateInternational TemplateID = "international"
)

// TemplateIDs lists every template identifier in declaration order.
var TemplateIDs = []TemplateID{
	TemplateRecruiting,
	TemplateClient,
	TemplateHybrid,
	TemplateLatinoUSA,
	TemplateInternational,
}

// Valid reports whether id is one of the registered template identifiers.
func (id TemplateID) Valid() bool {
	for _, known := range TemplateIDs {
		if id == known {
			return true
		}
	}
	return false
}

// Template is an immutable landing page template: display metadata plus
// the default content tree new pages are seeded from.
type Template struct {
	ID             TemplateID `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Color          string     `json:"color"` // style token, e.g. "bg-green-500"
	DefaultContent Content    `json:"defaultContent"`
}
