// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package leads is the intake behind public lead forms: it stores each
// submission for the page's owner.
package leads

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"landingkit/internal/leadform"
	"landingkit/internal/metrics"
	"landingkit/internal/models"
)

// MaxRecent caps how many leads Recent returns.
const MaxRecent = 200

// Store persists leads.
type Store interface {
	Create(ctx context.Context, l *models.Lead) (*models.Lead, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit int) ([]models.Lead, error)
}

// Service accepts lead submissions.
type Service struct {
	store       Store
	redirectURL string
}

// NewService creates a Service. When redirectURL is set, successful
// submissions ask the visitor's browser to go there.
func NewService(store Store, redirectURL string) *Service {
	return &Service{store: store, redirectURL: redirectURL}
}

// SubmitLead stores a submission that is not tied to a stored page.
func (s *Service) SubmitLead(ctx context.Context, sub models.LeadSubmission) (models.LeadResult, error) {
	return s.submit(ctx, nil, sub)
}

// ForPage returns a Submitter that records pageID on every lead.
func (s *Service) ForPage(pageID uuid.UUID) leadform.Submitter {
	return pageSubmitter{s: s, pageID: pageID}
}

type pageSubmitter struct {
	s      *Service
	pageID uuid.UUID
}

func (p pageSubmitter) SubmitLead(ctx context.Context, sub models.LeadSubmission) (models.LeadResult, error) {
	return p.s.submit(ctx, &p.pageID, sub)
}

// Recent returns the newest leads of a professional. limit is clamped to
// [1, MaxRecent].
func (s *Service) Recent(ctx context.Context, professionalID uuid.UUID, limit int) ([]models.Lead, error) {
	limit = max(1, min(limit, MaxRecent))
	list, err := s.store.ListByProfessional(ctx, professionalID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent leads: %w", err)
	}
	return list, nil
}

func (s *Service) submit(ctx context.Context, pageID *uuid.UUID, sub models.LeadSubmission) (models.LeadResult, error) {
	if sub.ProfessionalID == uuid.Nil {
		metrics.LeadsTotal.WithLabelValues(string(sub.TemplateID), metrics.ResultError).Inc()
		return models.LeadResult{Success: false}, nil
	}

	fields := make(map[string]string, len(sub.Values))
	for k, v := range sub.Values {
		fields[k] = v
	}
	source := sub.Source
	if source == "" {
		source = models.LeadSourceLandingPage
	}

	lead, err := s.store.Create(ctx, &models.Lead{
		PageID:         pageID,
		ProfessionalID: sub.ProfessionalID,
		TemplateID:     sub.TemplateID,
		Source:         source,
		Fields:         fields,
	})
	if err != nil {
		metrics.LeadsTotal.WithLabelValues(string(sub.TemplateID), metrics.ResultError).Inc()
		return models.LeadResult{}, fmt.Errorf("store lead: %w", err)
	}

	metrics.LeadsTotal.WithLabelValues(string(sub.TemplateID), metrics.ResultOK).Inc()
	slog.Info("lead received",
		"lead_id", lead.ID,
		"professional_id", sub.ProfessionalID,
		"template", sub.TemplateID,
	)
	return models.LeadResult{Success: true, RedirectURL: s.redirectURL}, nil
}
