// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LeadSourceLandingPage tags submissions coming from a public landing page.
const LeadSourceLandingPage = "landing_page"

// LeadSubmission is the payload a lead-capture form hands to the intake
// collaborator. On the wire it is a flat object: the field values spread
// first, then templateId, professionalId and source.
type LeadSubmission struct {
	Values         map[string]string
	TemplateID     TemplateID
	ProfessionalID uuid.UUID
	Source         string
}

// Payload flattens the submission. Identity keys win over field values
// with the same name.
func (s LeadSubmission) Payload() map[string]string {
	out := make(map[string]string, len(s.Values)+3)
	for k, v := range s.Values {
		out[k] = v
	}
	out["templateId"] = string(s.TemplateID)
	out["professionalId"] = s.ProfessionalID.String()
	out["source"] = s.Source
	return out
}

// MarshalJSON encodes the flattened payload.
func (s LeadSubmission) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Payload())
}

// LeadResult is what the intake collaborator reports back.
type LeadResult struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// Lead is a stored submission.
type Lead struct {
	ID             uuid.UUID         `json:"id"`
	PageID         *uuid.UUID        `json:"page_id,omitempty"`
	ProfessionalID uuid.UUID         `json:"professional_id"`
	TemplateID     TemplateID        `json:"template_id"`
	Source         string            `json:"source"`
	Fields         map[string]string `json:"fields"`
	CreatedAt      time.Time         `json:"created_at"`
}
