// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"landingkit/internal/models"
)

var validate = validator.New()

// Validate checks the parts of a document later stages rely on: form
// field names are unique and non-empty (the interest select counts as a
// field), field types come from the closed set, and select fields carry
// options.
func Validate(c models.Content) error {
	if c.FormConfig == nil {
		return nil
	}
	fc := c.FormConfig

	if err := validate.Struct(fc); err != nil {
		return fmt.Errorf("%w: %s", ErrSchema, describe(err))
	}
	if fc.InterestField != nil {
		if err := validate.Struct(fc.InterestField); err != nil {
			return fmt.Errorf("%w: interestField: %s", ErrSchema, describe(err))
		}
	}

	seen := make(map[string]bool, len(fc.Fields)+1)
	if fc.InterestField != nil {
		seen[models.InterestFieldName] = true
	}
	for i, f := range fc.Fields {
		if seen[f.Name] {
			return fmt.Errorf("%w: fields[%d]: duplicate name %q", ErrSchema, i, f.Name)
		}
		seen[f.Name] = true
		if f.Type == models.FieldSelect && len(f.Options) == 0 {
			return fmt.Errorf("%w: fields[%d]: select field %q needs options", ErrSchema, i, f.Name)
		}
	}
	return nil
}

// describe flattens validator errors into one readable line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
