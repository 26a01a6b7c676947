// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package leadform turns a page's formConfig into the lead-capture form
// visitors fill in, validates their input and forwards submissions to the
// lead intake.
package leadform

import "landingkit/internal/models"

// InterestName is the control name of the leading interest select.
const InterestName = models.InterestFieldName

// Kind is the widget a control renders as.
type Kind string

const (
	KindInput    Kind = "input"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
)

// Control is one rendered input of a lead form.
type Control struct {
	Name        string
	Label       string
	Kind        Kind
	Type        models.FieldType
	InputType   string
	InputMode   string
	Required    bool
	Placeholder string
	Options     []models.FieldOption
	Interest    bool
}

// Definition is the ordered control list of a form plus its chrome.
type Definition struct {
	Title      string
	SubmitText string
	Controls   []Control
}

// DefaultSubmitText labels the submit button when formConfig has none.
const DefaultSubmitText = "Submit"

// Build derives the controls of a form: the interest select first when
// configured, then every field in order. A nil config yields an empty
// definition.
func Build(fc *models.FormConfig) Definition {
	def := Definition{SubmitText: DefaultSubmitText}
	if fc == nil {
		return def
	}
	def.Title = fc.Title
	if fc.SubmitButtonText != "" {
		def.SubmitText = fc.SubmitButtonText
	}

	if fc.InterestField != nil {
		def.Controls = append(def.Controls, Control{
			Name:     InterestName,
			Label:    fc.InterestField.Label,
			Kind:     KindSelect,
			Type:     models.FieldSelect,
			Required: true,
			Options:  append([]models.FieldOption(nil), fc.InterestField.Options...),
			Interest: true,
		})
	}

	for _, f := range fc.Fields {
		c := Control{
			Name:        f.Name,
			Label:       f.Label,
			Type:        f.Type,
			Required:    f.Required,
			Placeholder: f.Placeholder,
		}
		switch f.Type {
		case models.FieldTextarea:
			c.Kind = KindTextarea
		case models.FieldSelect:
			c.Kind = KindSelect
			c.Options = append([]models.FieldOption(nil), f.Options...)
		case models.FieldEmail:
			c.Kind, c.InputType, c.InputMode = KindInput, "email", "email"
		case models.FieldTel:
			c.Kind, c.InputType, c.InputMode = KindInput, "tel", "tel"
		default:
			c.Kind, c.InputType, c.InputMode = KindInput, "text", "text"
		}
		def.Controls = append(def.Controls, c)
	}
	return def
}

// Control returns the control named name.
func (d Definition) Control(name string) (Control, bool) {
	for _, c := range d.Controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}

// HasOption reports whether value is one of c's option values.
func (c Control) HasOption(value string) bool {
	for _, o := range c.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
