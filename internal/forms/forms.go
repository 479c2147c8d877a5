// Package forms implements table-driven validation for submitted form
// fields. Each form is a list of field constraints evaluated uniformly;
// failures come back as a map keyed by field name, never partially
// applied.
package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field declares the constraints for one named form field.
type Field struct {
	Name     string
	Required bool
	MinLen   int
	MaxLen   int
	Email    bool
	Numeric  bool     // optional non-negative decimal
	OneOf    []string // fixed choice set
}

// Form is an ordered set of field constraints.
type Form []Field

// Validate checks submitted values against the declared constraints.
// It returns trimmed values for every declared field, an error map
// keyed by field name, and whether the submission passed.
func (f Form) Validate(submitted url.Values) (map[string]string, map[string]string, bool) {
	values := make(map[string]string, len(f))
	errs := map[string]string{}

	for _, fld := range f {
		v := strings.TrimSpace(submitted.Get(fld.Name))
		values[fld.Name] = v

		if v == "" {
			if fld.Required {
				errs[fld.Name] = "This field is required."
			}
			continue
		}
		// Length bounds count characters, not bytes.
		n := utf8.RuneCountInString(v)
		if fld.MinLen > 0 && n < fld.MinLen {
			errs[fld.Name] = fmt.Sprintf("Must be between %d and %d characters.", fld.MinLen, fld.MaxLen)
			continue
		}
		if fld.MaxLen > 0 && n > fld.MaxLen {
			errs[fld.Name] = fmt.Sprintf("Must be between %d and %d characters.", fld.MinLen, fld.MaxLen)
			continue
		}
		if fld.Email {
			if _, err := mail.ParseAddress(v); err != nil {
				errs[fld.Name] = "Invalid email address."
				continue
			}
		}
		if fld.Numeric {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil || n < 0 {
				errs[fld.Name] = "Must be a non-negative number."
				continue
			}
		}
		if len(fld.OneOf) > 0 && !contains(fld.OneOf, v) {
			errs[fld.Name] = "Invalid choice."
			continue
		}
	}

	return values, errs, len(errs) == 0
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
