// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

// TestTemplateIDConstants verifies that template identifiers have the
// values stored in the template_type column.
func TestTemplateIDConstants(t *testing.T) {
	tests := []struct {
		id       TemplateID
		expected string
	}{
		{TemplateRecruiting, "recruiting"},
		{TemplateClient, "client"},
		{TemplateHybrid, "hybrid"},
		{TemplateLatinoUSA, "latino_usa"},
		{TemplateInternational, "international"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if string(tc.id) != tc.expected {
				t.Errorf("TemplateID = %q, want %q", tc.id, tc.expected)
			}
			if !tc.id.Valid() {
				t.Errorf("TemplateID(%q).Valid() = false", tc.id)
			}
		})
	}
}

// TestTemplateIDDistinct ensures all template identifiers are unique.
func TestTemplateIDDistinct(t *testing.T) {
	seen := make(map[TemplateID]bool)
	for _, id := range TemplateIDs {
		if seen[id] {
			t.Errorf("duplicate TemplateID value: %q", id)
		}
		seen[id] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 template ids, got %d", len(seen))
	}
}

// TestTemplateIDInvalid ensures unknown identifiers are rejected.
func TestTemplateIDInvalid(t *testing.T) {
	for _, id := range []TemplateID{"", "Recruiting", "latino-usa", "blank"} {
		if id.Valid() {
			t.Errorf("TemplateID(%q).Valid() = true, want false", id)
		}
	}
}

// TestPageDisplayTitle verifies the fallback to the template name.
func TestPageDisplayTitle(t *testing.T) {
	empty := ""
	custom := "My page"
	tests := []struct {
		name  string
		title *string
		want  string
	}{
		{name: "nil title", title: nil, want: "Recruiting"},
		{name: "empty title", title: &empty, want: "Recruiting"},
		{name: "custom title", title: &custom, want: "My page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Page{Title: tt.title}
			if got := p.DisplayTitle("Recruiting"); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
