// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package icons

import (
	"strings"
	"testing"

	"landingkit/internal/registry"
)

func TestLookup(t *testing.T) {
	i, ok := Lookup("shield")
	if !ok || i.Name != "shield" || !strings.HasPrefix(string(i.SVG), "<svg") {
		t.Errorf("Lookup(shield) = %+v, %v", i, ok)
	}

	for _, name := range []string{"", "Shield", "rocket", "<script>"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) resolved", name)
		}
		if SVG(name) != "" {
			t.Errorf("SVG(%q) is not empty", name)
		}
	}
}

// TestDefaultContentIconsResolve verifies every icon referenced by the
// built-in template defaults is in the set.
func TestDefaultContentIconsResolve(t *testing.T) {
	for _, tmpl := range registry.New().All() {
		for key, sec := range tmpl.DefaultContent.Sections {
			for _, name := range iconNames(sec) {
				if _, ok := Lookup(name); !ok {
					t.Errorf("%s.%s references unknown icon %q", tmpl.ID, key, name)
				}
			}
		}
	}
}

func iconNames(sec any) []string {
	m, ok := sec.(map[string]any)
	if !ok {
		return nil
	}
	items, _ := m["items"].([]any)
	var out []string
	for _, it := range items {
		if im, ok := it.(map[string]any); ok {
			if name, ok := im["icon"].(string); ok {
				out = append(out, name)
			}
		}
	}
	return out
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(paths) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(paths))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}
