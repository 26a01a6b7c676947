// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package leadform

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"landingkit/internal/models"
)

var (
	ErrAlreadySubmitted = errors.New("form already submitted")
	ErrUnknownField     = errors.New("unknown form field")
	ErrRejected         = errors.New("lead intake rejected the submission")
	ErrSubmitting       = errors.New("submission in progress")
)

// Maximum accepted value lengths.
const (
	maxInputLen    = 500
	maxTextareaLen = 5000
)

// Submitter receives completed lead submissions.
type Submitter interface {
	SubmitLead(ctx context.Context, s models.LeadSubmission) (models.LeadResult, error)
}

// Status is where a form is in its lifecycle.
type Status int

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSubmitted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// ValidationError lists per-control problems that blocked a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + e.Fields[n]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// SubmissionError wraps a failed hand-off to the Submitter.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "submit lead: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

var (
	validate = newValidator()
	telRe    = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,24}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("tel", func(fl validator.FieldLevel) bool {
		return telRe.MatchString(fl.Field().String())
	})
	return v
}

// Form is one visitor's copy of a lead form. It is safe for concurrent use.
type Form struct {
	def            Definition
	templateID     models.TemplateID
	professionalID uuid.UUID
	submitter      Submitter

	mu      sync.Mutex
	values  map[string]string
	errs    map[string]string
	status  Status
	lastErr error
	result  models.LeadResult
}

// New creates an empty form for the given page identity.
func New(def Definition, templateID models.TemplateID, professionalID uuid.UUID, submitter Submitter) *Form {
	return &Form{
		def:            def,
		templateID:     templateID,
		professionalID: professionalID,
		submitter:      submitter,
		values:         make(map[string]string),
	}
}

// Set records the value of one control. Values are trimmed.
func (f *Form) Set(name, value string) error {
	if _, ok := f.def.Control(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitted {
		return ErrAlreadySubmitted
	}
	f.values[name] = strings.TrimSpace(value)
	delete(f.errs, name)
	return nil
}

// SetValues records every value whose name matches a control and ignores
// the rest.
func (f *Form) SetValues(values map[string]string) error {
	for name, v := range values {
		err := f.Set(name, v)
		if errors.Is(err, ErrUnknownField) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Status returns the lifecycle state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Validate checks the current values without submitting.
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() error {
	errs := make(map[string]string)
	for _, c := range f.def.Controls {
		if msg := checkControl(c, f.values[c.Name]); msg != "" {
			errs[c.Name] = msg
		}
	}
	f.errs = errs
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// checkControl returns a message describing what is wrong with value, or
// "" when it is acceptable.
func checkControl(c Control, value string) string {
	if value == "" {
		if c.Required {
			return "This field is required."
		}
		return ""
	}

	limit := maxInputLen
	if c.Kind == KindTextarea {
		limit = maxTextareaLen
	}
	if len(value) > limit {
		return fmt.Sprintf("Please keep this under %d characters.", limit)
	}

	switch c.Type {
	case models.FieldEmail:
		if validate.Var(value, "email") != nil {
			return "Please enter a valid email address."
		}
	case models.FieldTel:
		if validate.Var(value, "tel") != nil {
			return "Please enter a valid phone number."
		}
	case models.FieldSelect:
		if !c.HasOption(value) {
			return "Please choose one of the options."
		}
	}
	return ""
}

// Submit validates the form and hands it to the Submitter. A validation
// failure makes no external call. A Submitter failure leaves the values in
// place so the visitor can try again; success is terminal.
func (f *Form) Submit(ctx context.Context) (models.LeadResult, error) {
	f.mu.Lock()
	switch f.status {
	case StatusSubmitted:
		f.mu.Unlock()
		return f.result, ErrAlreadySubmitted
	case StatusSubmitting:
		f.mu.Unlock()
		return models.LeadResult{}, ErrSubmitting
	}
	if err := f.validateLocked(); err != nil {
		f.mu.Unlock()
		return models.LeadResult{}, err
	}
	sub := models.LeadSubmission{
		Values:         make(map[string]string, len(f.values)),
		TemplateID:     f.templateID,
		ProfessionalID: f.professionalID,
		Source:         models.LeadSourceLandingPage,
	}
	for k, v := range f.values {
		if v != "" {
			sub.Values[k] = v
		}
	}
	f.status = StatusSubmitting
	f.mu.Unlock()

	res, err := f.submitter.SubmitLead(ctx, sub)
	if err == nil && !res.Success {
		err = ErrRejected
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = StatusFailed
		f.lastErr = &SubmissionError{Err: err}
		return models.LeadResult{}, f.lastErr
	}
	f.status = StatusSubmitted
	f.lastErr = nil
	f.result = res
	return res, nil
}

// View is a render-ready copy of the form.
type View struct {
	Definition Definition
	Values     map[string]string
	Errors     map[string]string
	Status     Status
	Notice     string
	Result     models.LeadResult
}

// EmptyView renders def with no values.
func EmptyView(def Definition) View {
	return View{Definition: def, Values: map[string]string{}, Errors: map[string]string{}}
}

// View snapshots the form for rendering.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := View{
		Definition: f.def,
		Values:     make(map[string]string, len(f.values)),
		Errors:     make(map[string]string, len(f.errs)),
		Status:     f.status,
		Result:     f.result,
	}
	for k, val := range f.values {
		v.Values[k] = val
	}
	for k, msg := range f.errs {
		v.Errors[k] = msg
	}
	if f.status == StatusFailed {
		v.Notice = "Something went wrong sending your information. Please try again."
	}
	return v
}
