// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"

	"landingkit/internal/models"
)

// Apply returns a new document with value written at p. The input is
// never modified. Sibling keys at every level are preserved; the addressed
// key is replaced. A nil value at root scope removes the key. The result
// is validated before it is returned.
func Apply(c models.Content, p Path, value any) (models.Content, error) {
	if p.Key == "" && p.Scope != ScopeFormField {
		return models.Content{}, fmt.Errorf("%w: empty key", ErrInvalidPath)
	}

	v, err := normalize(value)
	if err != nil {
		return models.Content{}, fmt.Errorf("%s: %w", p, err)
	}
	m, err := toMap(c)
	if err != nil {
		return models.Content{}, err
	}

	switch p.Scope {
	case ScopeRoot:
		if v == nil {
			delete(m, p.Key)
		} else {
			m[p.Key] = v
		}

	case ScopeFormConfig:
		fc, _ := m[models.KeyFormConfig].(map[string]any)
		if fc == nil {
			fc = map[string]any{"fields": []any{}}
		}
		fc[p.Key] = v
		m[models.KeyFormConfig] = fc

	case ScopeFormField:
		fc, _ := m[models.KeyFormConfig].(map[string]any)
		if fc == nil {
			return models.Content{}, ErrNoFormConfig
		}
		fields, _ := fc["fields"].([]any)
		if p.Index < 0 || p.Index >= len(fields) {
			return models.Content{}, fmt.Errorf("%w: %d of %d", ErrFieldIndex, p.Index, len(fields))
		}
		field, _ := fields[p.Index].(map[string]any)
		if field == nil {
			field = map[string]any{}
		}
		if p.Key == "" {
			patch, ok := v.(map[string]any)
			if !ok {
				return models.Content{}, fmt.Errorf("%s: whole-field edits need an object", p)
			}
			for k, pv := range patch {
				field[k] = pv
			}
		} else {
			field[p.Key] = v
		}
		fields[p.Index] = field
		fc["fields"] = fields

	default:
		return models.Content{}, fmt.Errorf("%w: unknown scope %d", ErrInvalidPath, p.Scope)
	}

	return fromMap(m)
}
