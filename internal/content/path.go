// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"landingkit/internal/models"
)

var (
	// ErrInvalidPath is returned for edit paths outside the editable surface.
	ErrInvalidPath = errors.New("invalid content path")
	// ErrNoFormConfig is returned when editing a form field of a page
	// without a form.
	ErrNoFormConfig = errors.New("content has no form config")
	// ErrFieldIndex is returned when a form field index is out of range.
	ErrFieldIndex = errors.New("form field index out of range")
)

// Scope selects which level of the document an edit targets.
type Scope int

const (
	ScopeRoot Scope = iota
	ScopeFormConfig
	ScopeFormField
)

// Path addresses one editable value: a top-level key, a key of
// formConfig, or a key of one form field. A FormField path with an empty
// Key addresses the whole field object.
type Path struct {
	Scope Scope
	Key   string
	Index int
}

// Root addresses a top-level content key.
func Root(key string) Path { return Path{Scope: ScopeRoot, Key: key} }

// FormConfig addresses a key of formConfig.
func FormConfig(key string) Path { return Path{Scope: ScopeFormConfig, Key: key} }

// FormField addresses a key of formConfig.fields[index].
func FormField(index int, key string) Path {
	return Path{Scope: ScopeFormField, Index: index, Key: key}
}

// ParsePath reads the dotted form used by the editor API:
//
//	headline
//	formConfig.title
//	formConfig.fields.2
//	formConfig.fields.2.label
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if p == "" {
			return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
	}

	if len(parts) == 1 {
		return Root(parts[0]), nil
	}
	if parts[0] != models.KeyFormConfig {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	if len(parts) == 2 {
		return FormConfig(parts[1]), nil
	}
	if parts[1] != "fields" || len(parts) > 4 {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}

	idx, err := strconv.Atoi(parts[2])
	if err != nil || idx < 0 {
		return Path{}, fmt.Errorf("%w: %q: bad field index", ErrInvalidPath, s)
	}
	if len(parts) == 3 {
		return FormField(idx, ""), nil
	}
	return FormField(idx, parts[3]), nil
}

// String renders p in the dotted form ParsePath accepts.
func (p Path) String() string {
	switch p.Scope {
	case ScopeFormConfig:
		return models.KeyFormConfig + "." + p.Key
	case ScopeFormField:
		s := models.KeyFormConfig + ".fields." + strconv.Itoa(p.Index)
		if p.Key != "" {
			s += "." + p.Key
		}
		return s
	default:
		return p.Key
	}
}
