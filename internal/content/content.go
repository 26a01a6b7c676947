// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content is the validation boundary of the landing page content
// model. Stored JSON enters through Parse or Load; documents leave through
// Encode. Everything in between (seeding from template defaults, creation
// overrides, field-by-field edits) produces new documents and re-validates
// them, so later stages can assume a well-formed models.Content.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"landingkit/internal/models"
)

// DefaultLayout is the layout token written into freshly seeded content.
const DefaultLayout = "default"

var (
	// ErrEmpty marks stored content that is blank or an empty object.
	ErrEmpty = errors.New("content is empty")
	// ErrNotObject marks stored content that is JSON but not an object.
	ErrNotObject = errors.New("content is not a JSON object")
	// ErrSchema marks content that decodes but breaks the form schema.
	ErrSchema = errors.New("content violates schema")
)

// ParseError explains why stored content could not be used as-is. Callers
// recover from it by reseeding from template defaults.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse content: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes and validates a stored content document.
func Parse(raw string) (models.Content, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.Content{}, &ParseError{Err: ErrEmpty}
	}
	if trimmed[0] != '{' {
		return models.Content{}, &ParseError{Err: ErrNotObject}
	}

	var c models.Content
	if err := json.Unmarshal([]byte(trimmed), &c); err != nil {
		return models.Content{}, &ParseError{Err: err}
	}
	if isEmpty(c) {
		return models.Content{}, &ParseError{Err: ErrEmpty}
	}
	if err := Validate(c); err != nil {
		return models.Content{}, &ParseError{Err: err}
	}
	return c, nil
}

// Seed returns the content a new page of template t starts with: the
// template defaults plus its theme color and the default layout.
func Seed(t models.Template) models.Content {
	c := t.DefaultContent.Clone()
	c.ThemeColor = t.Color
	c.Layout = DefaultLayout
	return c
}

// Load parses stored content for a page of template t. When the stored
// document is unusable it returns the seeded defaults together with the
// ParseError that caused the reseed; the returned content is always valid.
func Load(raw string, t models.Template) (models.Content, *ParseError) {
	c, err := Parse(raw)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			perr = &ParseError{Err: err}
		}
		return Seed(t), perr
	}
	return c, nil
}

// Encode serializes a document for storage. Equal documents encode to
// identical strings.
func Encode(c models.Content) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode content: %w", err)
	}
	return string(b), nil
}

// Merge applies creation-time overrides on top of base with top-level
// (shallow) semantics: an override key replaces the whole base value.
func Merge(base models.Content, overrides map[string]any) (models.Content, error) {
	if len(overrides) == 0 {
		return base.Clone(), nil
	}
	m, err := toMap(base)
	if err != nil {
		return models.Content{}, err
	}
	for k, v := range overrides {
		nv, err := normalize(v)
		if err != nil {
			return models.Content{}, fmt.Errorf("override %q: %w", k, err)
		}
		m[k] = nv
	}
	return fromMap(m)
}

func isEmpty(c models.Content) bool {
	return c.Headline == "" && c.Subheadline == "" && c.HeroImage == "" &&
		c.ThemeColor == "" && c.Layout == "" && c.FormConfig == nil &&
		c.Blocks == nil && len(c.Sections) == 0
}

// toMap converts a document into a generic JSON tree that shares nothing
// with c.
func toMap(c models.Content) (map[string]any, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return m, nil
}

// fromMap decodes a generic tree back into a validated document.
func fromMap(m map[string]any) (models.Content, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return models.Content{}, fmt.Errorf("encode content: %w", err)
	}
	var c models.Content
	if err := json.Unmarshal(b, &c); err != nil {
		return models.Content{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := Validate(c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

// normalize pushes a value through JSON so only plain maps, slices,
// strings, float64s, bools and nil can enter a document.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON-serializable: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
