// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds and checks the custom usernames public landing pages
// are served under.
package slug

import (
	"regexp"
	"strings"

	"landingkit/internal/models"
)

// MaxLength bounds a custom username.
const MaxLength = 64

// reserved are first path segments the router serves itself. A page under
// one of them could never be reached.
var reserved = map[string]bool{
	"api":     true,
	"health":  true,
	"metrics": true,
}

var (
	// disallowed matches anything that isn't a letter, digit, underscore,
	// hyphen or whitespace.
	disallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// whitespace runs become a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// valid is the shape every stored custom username has.
	valid = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Jane Doe, Agent" -> "jane-doe-agent"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = disallowed.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-_")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-_")
	}
	return result
}

// Default is the custom username a page gets when its owner picks none:
// the owner's username followed by the template id.
func Default(username string, id models.TemplateID) string {
	base := Generate(username)
	if base == "" {
		return string(id)
	}
	if limit := MaxLength - len(id) - 1; len(base) > limit {
		base = strings.TrimRight(base[:limit], "-_")
	}
	return base + "-" + string(id)
}

// Reserved reports whether s is taken by a route of the service.
func Reserved(s string) bool {
	return reserved[s]
}

// Valid reports whether s can be used as a custom username as is.
func Valid(s string) bool {
	return len(s) <= MaxLength && valid.MatchString(s) && !reserved[s]
}
