// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"landingkit/internal/models"
)

const defaultLeadLimit = 50

// LeadInbox lists the leads a professional received.
type LeadInbox interface {
	Recent(ctx context.Context, professionalID uuid.UUID, limit int) ([]models.Lead, error)
}

// Leads serves the lead inbox API.
type Leads struct {
	inbox LeadInbox
}

// NewLeads creates the lead inbox handler group.
func NewLeads(inbox LeadInbox) *Leads {
	return &Leads{inbox: inbox}
}

// List returns the newest leads of the professional. ?limit= narrows the
// result.
func (h *Leads) List(w http.ResponseWriter, r *http.Request) {
	pro, ok := professional(w, r)
	if !ok {
		return
	}
	limit := defaultLeadLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	list, err := h.inbox.Recent(r.Context(), pro.ID, limit)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if list == nil {
		list = []models.Lead{}
	}
	writeJSON(w, http.StatusOK, list)
}
