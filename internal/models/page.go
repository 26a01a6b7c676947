// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is the shared "does not exist" signal. Packages wrap it in
// their own sentinels so callers can match either.
var ErrNotFound = errors.New("not found")

// Page is a landing page owned by one professional. Content holds the
// serialized Content document; an empty string means "use the template
// defaults".
type Page struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	TemplateType   TemplateID `json:"template_type"`
	CustomUsername string     `json:"custom_username"`
	Title          *string    `json:"title,omitempty"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DisplayTitle returns the page title, falling back to the given template
// name when no title was set.
func (p *Page) DisplayTitle(templateName string) string {
	if p.Title != nil && *p.Title != "" {
		return *p.Title
	}
	return templateName
}

// PageWithOwner is a page joined with the professional who owns it. Used
// by the public viewer, which needs the owner's identity to render.
type PageWithOwner struct {
	Page
	Owner Professional `json:"owner"`
}

// PageSummary is a page row decorated with its lead count for listings.
type PageSummary struct {
	Page
	LeadCount int    `json:"lead_count"`
	PublicURL string `json:"public_url"`
}
