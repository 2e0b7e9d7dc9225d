package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	apperr "marketplace/internal/errors"
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// Validator collects field errors.
type Validator struct {
	errs *apperr.ValidationError
}

// New creates a new validator
func New() *Validator {
	return &Validator{errs: apperr.NewValidationError()}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return v.errs.Empty()
}

// Err returns the collected errors or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.errs
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.errs.Add(field, message)
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) has(field string) bool {
	_, ok := v.errs.Fields[field]
	return ok
}

// NotBlank rejects present but whitespace-only values.
func (v *Validator) NotBlank(field string, value *string) {
	if value != nil && !v.has(field) {
		v.Check(strings.TrimSpace(*value) != "", field, MsgBlank)
	}
}

// Present rejects missing values on full writes.
func (v *Validator) Present(ok bool, field string) {
	if !v.has(field) {
		v.Check(ok, field, MsgRequired)
	}
}

// Username checks the allowed character set.
func (v *Validator) Username(field, username string) {
	if username == "" || v.has(field) {
		return
	}
	v.Check(usernameRegex.MatchString(username), field,
		"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
}

// Decimal checks a value fits a decimal(maxDigits, places) column.
func (v *Validator) Decimal(field string, value float64, maxDigits, places int) {
	if v.has(field) {
		return
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.AddError(field, "A valid number is required.")
		return
	}

	repr := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	whole, frac, _ := strings.Cut(repr, ".")
	if len(frac) > places {
		v.AddError(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", places))
		return
	}
	v.Check(len(whole) <= maxDigits-places, field,
		fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits))
}
