package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ErrInvalid is matched by every *FieldErrors.
var ErrInvalid = errors.New("validation failed")

// FieldErrors maps a struct field name to the tag that rejected it.
type FieldErrors struct {
	Fields map[string]string
}

func (f *FieldErrors) Error() string {
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (f *FieldErrors) Is(target error) bool { return target == ErrInvalid }

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = e.Tag()
	}
	return out
}

// Check is Validate as an error value, nil when v is valid.
func Check(v interface{}) error {
	if fields := Validate(v); fields != nil {
		return &FieldErrors{Fields: fields}
	}
	return nil
}
