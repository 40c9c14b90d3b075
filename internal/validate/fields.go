// Package validate enforces the field-level bounds that input collection
// guarantees before the engine runs, plus a structural schema check of
// scenario documents. The engine never calls into this package.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// FieldError is one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// FieldErrors collects every rejected field of a request
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.String()
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Err returns nil when there are no field errors
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Fields returns the rejected field names in order
func (fe FieldErrors) Fields() []string {
	out := make([]string, len(fe))
	for i, e := range fe {
		out[i] = e.Field
	}
	return out
}

// AsFieldErrors unwraps err into FieldErrors when it carries them
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// checker accumulates errors for fields sharing a prefix
type checker struct {
	prefix string
	errs   FieldErrors
}

func newChecker(prefix string) *checker {
	return &checker{prefix: prefix}
}

func (c *checker) fail(field, msg string) {
	name := field
	if c.prefix != "" {
		name = c.prefix + "." + field
	}
	c.errs = append(c.errs, FieldError{Field: name, Message: msg})
}

// number checks v is finite and within [lo, hi]; a failed finite check
// skips the bound checks for that field
func (c *checker) number(field string, v, lo float64, loMsg string, hi float64, hiMsg string) {
	if !c.finite(field, v) {
		return
	}
	if v < lo {
		c.fail(field, loMsg)
		return
	}
	if v > hi {
		c.fail(field, hiMsg)
	}
}

func (c *checker) atLeast(field string, v, lo float64, msg string) {
	if !c.finite(field, v) {
		return
	}
	if v < lo {
		c.fail(field, msg)
	}
}

func (c *checker) finite(field string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.fail(field, "Must be a number")
		return false
	}
	return true
}

func minMultiple(m float64) string { return fmt.Sprintf("Minimum %gx", m) }
func maxMultiple(m float64) string { return fmt.Sprintf("Maximum %gx", m) }
