// Package validate implements client-side draft validation and the
// reconciliation of backend-reported field errors into the same map shape.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
)

// Draft checks a draft against its schema and returns the field-error map.
// An empty map means the draft is submit-eligible; a non-empty map is a hard
// block on submission.
func Draft(d *model.Draft, s *schema.Schema) model.ValidationErrorMap {
	errs := make(model.ValidationErrorMap)

	for _, f := range s.Fields {
		value := fieldValue(d, f)
		if msg := checkField(f, value); msg != "" {
			errs[f.Name] = msg
		}
	}

	for _, r := range s.CrossRules {
		if errs.Has(r.Then) {
			continue
		}
		ifField, _ := s.Field(r.If)
		thenField, _ := s.Field(r.Then)
		if fieldValue(d, ifField) != "" && fieldValue(d, thenField) == "" {
			msg := r.Message
			if msg == "" {
				msg = fmt.Sprintf("%s is required", thenField.Label)
			}
			errs[r.Then] = msg
		}
	}

	return errs
}

// fieldValue resolves a field's trimmed string representation; rich text is
// stored on the draft separately from the scalar map.
func fieldValue(d *model.Draft, f schema.Field) string {
	if f.Kind == schema.KindRich {
		return strings.TrimSpace(d.RichText)
	}
	return strings.TrimSpace(d.Field(f.Name))
}

func checkField(f schema.Field, value string) string {
	if f.Required {
		if err := validation.Validate(value, validation.Required.Error(fmt.Sprintf("%s is required", f.Label))); err != nil {
			return err.Error()
		}
	}
	if value == "" {
		return ""
	}

	switch f.Kind {
	case schema.KindInt:
		if err := validation.Validate(value, is.Int.Error(fmt.Sprintf("%s must be a whole number", f.Label))); err != nil {
			return err.Error()
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Sprintf("%s must not be negative", f.Label)
		}
	case schema.KindFloat:
		if err := validation.Validate(value, is.Float.Error(fmt.Sprintf("%s must be a number", f.Label))); err != nil {
			return err.Error()
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Sprintf("%s must be a number", f.Label)
		}
		if f.Min != nil && n < *f.Min || f.Max != nil && n > *f.Max {
			return rangeMessage(f)
		}
	}
	return ""
}

func rangeMessage(f schema.Field) string {
	switch {
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("%s must be between %g and %g", f.Label, *f.Min, *f.Max)
	case f.Min != nil:
		return fmt.Sprintf("%s must be at least %g", f.Label, *f.Min)
	default:
		return fmt.Sprintf("%s must be at most %g", f.Label, *f.Max)
	}
}

// Reconcile converts the errors object of a rejected submission into a
// ValidationErrorMap. Values may be a single message or a list of messages,
// in which case the first one wins. The result replaces the local map
// entirely; after a submission attempt the backend is authoritative.
func Reconcile(raw map[string]any) model.ValidationErrorMap {
	errs := make(model.ValidationErrorMap, len(raw))
	for field, v := range raw {
		switch msg := v.(type) {
		case string:
			errs[field] = msg
		case []any:
			if len(msg) == 0 {
				continue
			}
			if s, ok := msg[0].(string); ok {
				errs[field] = s
			} else {
				errs[field] = fmt.Sprint(msg[0])
			}
		case []string:
			if len(msg) > 0 {
				errs[field] = msg[0]
			}
		default:
			errs[field] = fmt.Sprint(v)
		}
	}
	return errs
}
