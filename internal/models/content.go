// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FieldType is the input kind of a lead form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// Valid reports whether t is a supported field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldEmail, FieldTel, FieldTextarea, FieldSelect:
		return true
	}
	return false
}

// ErrInvalidOption is returned when a select option is neither a string
// nor a {value,label} object.
var ErrInvalidOption = errors.New("option must be a string or an object with a value")

// FieldOption is one choice of a select field. Stored content may use a
// bare string ("Full time") or an object ({"value":"ft","label":"Full
// time"}); both decode to the same shape.
type FieldOption struct {
	Value string
	Label string
}

// MarshalJSON writes the short string form when value and label match.
func (o FieldOption) MarshalJSON() ([]byte, error) {
	if o.Value == o.Label {
		return json.Marshal(o.Value)
	}
	return json.Marshal(struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}{o.Value, o.Label})
}

// UnmarshalJSON accepts both option shapes.
func (o *FieldOption) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ErrInvalidOption
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		o.Value, o.Label = s, s
		return nil
	case '{':
		var obj struct {
			Value *string `json:"value"`
			Label *string `json:"label"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.Value == nil {
			return ErrInvalidOption
		}
		o.Value = *obj.Value
		o.Label = *obj.Value
		if obj.Label != nil {
			o.Label = *obj.Label
		}
		return nil
	}
	return ErrInvalidOption
}

// InterestFieldName is the submitted name of the interest select. No
// form field may use it while an interestField is configured.
const InterestFieldName = "interest"

// InterestField is the optional leading select of a lead form. It is
// always required when present.
type InterestField struct {
	Label   string        `json:"label" validate:"max=200"`
	Options []FieldOption `json:"options" validate:"min=1"`
}

// FormField describes one input of a lead form.
type FormField struct {
	Name        string        `json:"name" validate:"required,max=64"`
	Label       string        `json:"label" validate:"max=200"`
	Type        FieldType     `json:"type" validate:"required,oneof=text email tel textarea select"`
	Required    bool          `json:"required,omitempty"`
	Placeholder string        `json:"placeholder,omitempty" validate:"max=200"`
	Options     []FieldOption `json:"options,omitempty"`
}

// FormConfig is the data-driven definition of a page's lead form.
type FormConfig struct {
	Title            string         `json:"title,omitempty" validate:"max=200"`
	SubmitButtonText string         `json:"submitButtonText,omitempty" validate:"max=100"`
	InterestField    *InterestField `json:"interestField,omitempty"`
	Fields           []FormField    `json:"fields" validate:"dive"`
}

// BlockType tags a block of a builder-authored page.
type BlockType string

const (
	BlockHeader       BlockType = "header"
	BlockHero         BlockType = "hero"
	BlockForm         BlockType = "form"
	BlockTestimonials BlockType = "testimonials"
	BlockText         BlockType = "text"
	BlockCTA          BlockType = "cta"
)

// Block is one ordered, self-contained unit of a block-based page. Props
// holds every key of the block object except "type".
type Block struct {
	Type  BlockType
	Props map[string]any
}

// String returns the string prop under key, or "" when absent or not a string.
func (b Block) String(key string) string {
	s, _ := b.Props[key].(string)
	return s
}

// MarshalJSON writes the block as a flat object.
func (b Block) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(b.Props)+1)
	for k, v := range b.Props {
		m[k] = v
	}
	m["type"] = string(b.Type)
	return json.Marshal(m)
}

// UnmarshalJSON reads a flat block object. A missing or non-string type
// yields an empty BlockType, which renders as nothing.
func (b *Block) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("block must be an object")
	}
	t, _ := m["type"].(string)
	delete(m, "type")
	b.Type = BlockType(t)
	b.Props = m
	return nil
}

// Content keys with a typed home on the Content struct. Every other top
// level key is a template-specific section kept in Sections.
const (
	KeyHeadline    = "headline"
	KeySubheadline = "subheadline"
	KeyHeroImage   = "heroImage"
	KeyThemeColor  = "themeColor"
	KeyLayout      = "layout"
	KeyFormConfig  = "formConfig"
	KeyBlocks      = "blocks"
)

// IsReservedKey reports whether key maps to a typed Content field.
func IsReservedKey(key string) bool {
	switch key {
	case KeyHeadline, KeySubheadline, KeyHeroImage, KeyThemeColor, KeyLayout, KeyFormConfig, KeyBlocks:
		return true
	}
	return false
}

// Content is the editable document stored in Page.Content.
//
// Blocks distinguishes nil (no "blocks" key, named-section rendering) from
// an empty slice (block rendering of nothing). Sections holds the opaque
// per-template trees such as whyJoinUs or familySupport.
type Content struct {
	Headline    string
	Subheadline string
	HeroImage   string
	ThemeColor  string
	Layout      string
	FormConfig  *FormConfig
	Blocks      []Block
	Sections    map[string]any
}

// HasBlocks reports whether the document renders as a block sequence.
func (c Content) HasBlocks() bool {
	return c.Blocks != nil
}

// Section returns the raw tree stored under a template-specific key.
func (c Content) Section(key string) (any, bool) {
	v, ok := c.Sections[key]
	return v, ok
}

// MarshalJSON encodes the document as one flat object. Keys come out
// sorted, so equal documents always produce identical bytes.
func (c Content) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Sections)+7)
	for k, v := range c.Sections {
		m[k] = v
	}
	setString := func(key, val string) {
		if val != "" {
			m[key] = val
		}
	}
	setString(KeyHeadline, c.Headline)
	setString(KeySubheadline, c.Subheadline)
	setString(KeyHeroImage, c.HeroImage)
	setString(KeyThemeColor, c.ThemeColor)
	setString(KeyLayout, c.Layout)
	if c.FormConfig != nil {
		m[KeyFormConfig] = c.FormConfig
	}
	if c.Blocks != nil {
		m[KeyBlocks] = c.Blocks
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a flat document object. Typed keys must have the
// right JSON type; anything else is kept verbatim in Sections.
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("content must be an object")
	}

	*c = Content{}
	for key, val := range raw {
		var err error
		switch key {
		case KeyHeadline:
			err = decodeString(val, &c.Headline)
		case KeySubheadline:
			err = decodeString(val, &c.Subheadline)
		case KeyHeroImage:
			err = decodeString(val, &c.HeroImage)
		case KeyThemeColor:
			err = decodeString(val, &c.ThemeColor)
		case KeyLayout:
			err = decodeString(val, &c.Layout)
		case KeyFormConfig:
			if isNull(val) {
				continue
			}
			c.FormConfig = &FormConfig{}
			err = json.Unmarshal(val, c.FormConfig)
		case KeyBlocks:
			if isNull(val) {
				continue
			}
			c.Blocks = make([]Block, 0)
			err = json.Unmarshal(val, &c.Blocks)
		default:
			var v any
			err = json.Unmarshal(val, &v)
			if err == nil {
				if c.Sections == nil {
					c.Sections = make(map[string]any)
				}
				c.Sections[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("content key %q: %w", key, err)
		}
	}
	return nil
}

// Clone returns a deep copy that shares no mutable state with c.
func (c Content) Clone() Content {
	out := c
	if c.FormConfig != nil {
		fc := *c.FormConfig
		if c.FormConfig.InterestField != nil {
			interest := *c.FormConfig.InterestField
			interest.Options = append([]FieldOption(nil), interest.Options...)
			fc.InterestField = &interest
		}
		if c.FormConfig.Fields != nil {
			fc.Fields = make([]FormField, len(c.FormConfig.Fields))
			for i, f := range c.FormConfig.Fields {
				f.Options = append([]FieldOption(nil), f.Options...)
				fc.Fields[i] = f
			}
		}
		out.FormConfig = &fc
	}
	if c.Blocks != nil {
		out.Blocks = make([]Block, len(c.Blocks))
		for i, b := range c.Blocks {
			props, _ := CloneValue(b.Props).(map[string]any)
			out.Blocks[i] = Block{Type: b.Type, Props: props}
		}
	}
	if c.Sections != nil {
		out.Sections, _ = CloneValue(c.Sections).(map[string]any)
	}
	return out
}

// CloneValue deep-copies a decoded JSON tree (maps, slices and scalars).
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = CloneValue(val)
		}
		return m
	case []any:
		if t == nil {
			return t
		}
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = CloneValue(val)
		}
		return s
	default:
		return v
	}
}

func decodeString(raw json.RawMessage, dst *string) error {
	if isNull(raw) {
		*dst = ""
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
