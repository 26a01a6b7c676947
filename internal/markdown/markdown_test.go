// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			source:   "Hello **world**",
			contains: []string{"<strong>world</strong>"},
		},
		{
			name:     "heading gets id",
			source:   "## Our Team",
			contains: []string{`<h2 id="our-team">Our Team</h2>`},
		},
		{
			name:     "table",
			source:   "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "raw script dropped",
			source:   "hi <script>alert(1)</script>",
			excludes: []string{"<script", "alert(1)</script>"},
		},
		{
			name:     "javascript link dropped",
			source:   "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:     "links get nofollow",
			source:   "[site](https://example.com)",
			contains: []string{`href="https://example.com"`, `rel="nofollow"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`<p onclick="x()">ok</p><img src=x onerror=alert(1)>`)
	if strings.Contains(got, "onclick") || strings.Contains(got, "onerror") {
		t.Errorf("event handlers survived: %s", got)
	}
	if !strings.Contains(got, "<p>ok</p>") {
		t.Errorf("safe markup lost: %s", got)
	}
}
