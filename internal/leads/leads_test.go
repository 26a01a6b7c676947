// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"landingkit/internal/leadform"
	"landingkit/internal/models"
	"landingkit/internal/registry"
)

type fakeStore struct {
	leads []models.Lead
	err   error
}

func (f *fakeStore) Create(_ context.Context, l *models.Lead) (*models.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *l
	out.ID = uuid.New()
	f.leads = append(f.leads, out)
	return &out, nil
}

func (f *fakeStore) ListByProfessional(_ context.Context, professionalID uuid.UUID, limit int) ([]models.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Lead
	for i := len(f.leads) - 1; i >= 0 && len(out) < limit; i-- {
		if f.leads[i].ProfessionalID == professionalID {
			out = append(out, f.leads[i])
		}
	}
	return out, nil
}

func TestSubmitLead(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, "https://example.com/thanks")
	proID := uuid.New()

	res, err := svc.SubmitLead(context.Background(), models.LeadSubmission{
		Values:         map[string]string{"email": "ana@example.com"},
		TemplateID:     models.TemplateClient,
		ProfessionalID: proID,
	})
	if err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}
	want := models.LeadResult{Success: true, RedirectURL: "https://example.com/thanks"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if len(store.leads) != 1 {
		t.Fatalf("stored %d leads, want 1", len(store.leads))
	}
	got := store.leads[0]
	if got.PageID != nil || got.ProfessionalID != proID || got.Source != models.LeadSourceLandingPage {
		t.Errorf("stored lead = %+v", got)
	}
}

func TestSubmitLeadWithoutProfessionalIsRejected(t *testing.T) {
	store := &fakeStore{}
	res, err := NewService(store, "").SubmitLead(context.Background(), models.LeadSubmission{TemplateID: models.TemplateClient})
	if err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}
	if res.Success {
		t.Error("submission without a professional was accepted")
	}
	if len(store.leads) != 0 {
		t.Error("rejected submission was stored")
	}
}

func TestSubmitLeadStoreFailure(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewService(&fakeStore{err: boom}, "").SubmitLead(context.Background(), models.LeadSubmission{
		TemplateID:     models.TemplateClient,
		ProfessionalID: uuid.New(),
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestForPageDrivesLeadForm(t *testing.T) {
	tmpl, err := registry.New().Lookup(models.TemplateRecruiting)
	if err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{}
	pageID := uuid.New()
	proID := uuid.New()

	form := leadform.New(leadform.Build(tmpl.DefaultContent.FormConfig), tmpl.ID, proID, NewService(store, "").ForPage(pageID))
	if err := form.SetValues(map[string]string{
		"firstName": "Ana",
		"lastName":  "Lopez",
		"email":     "ana@example.com",
		"phone":     "+1 555 010 0000",
	}); err != nil {
		t.Fatalf("SetValues: %v", err)
	}
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(store.leads) != 1 {
		t.Fatalf("stored %d leads, want 1", len(store.leads))
	}
	got := store.leads[0]
	if got.PageID == nil || *got.PageID != pageID {
		t.Errorf("PageID = %v, want %s", got.PageID, pageID)
	}
	if got.TemplateID != models.TemplateRecruiting || got.Fields["firstName"] != "Ana" {
		t.Errorf("stored lead = %+v", got)
	}
}

func TestRecent(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, "")
	proID := uuid.New()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := svc.SubmitLead(context.Background(), models.LeadSubmission{
			Values:         map[string]string{"email": email},
			TemplateID:     models.TemplateClient,
			ProfessionalID: proID,
		}); err != nil {
			t.Fatalf("SubmitLead: %v", err)
		}
	}
	svc.SubmitLead(context.Background(), models.LeadSubmission{TemplateID: models.TemplateClient, ProfessionalID: uuid.New()})

	tests := []struct {
		name   string
		limit  int
		emails []string
	}{
		{"newest first", 10, []string{"c@example.com", "b@example.com", "a@example.com"}},
		{"limited", 2, []string{"c@example.com", "b@example.com"}},
		{"zero clamps to one", 0, []string{"c@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.Recent(context.Background(), proID, tt.limit)
			if err != nil {
				t.Fatalf("Recent: %v", err)
			}
			var got []string
			for _, l := range list {
				got = append(got, l.Fields["email"])
			}
			if diff := cmp.Diff(tt.emails, got); diff != "" {
				t.Errorf("emails mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecentStoreFailure(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewService(&fakeStore{err: boom}, "").Recent(context.Background(), uuid.New(), 10)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}
