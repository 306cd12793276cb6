// Package validation holds the shared struct validator used for input
// documents (token tables, screen catalogs, engine options).
package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/screenforge/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Instance returns the shared validator with the custom tags registered:
//
//	key      lowercase dash separated identifier (design keys, screen ids)
//	name     printable display name
func Instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("key", func(fl validator.FieldLevel) bool {
			return errors.ValidateKey(fl.Field().String()) == nil
		})

		_ = v.RegisterValidation("name", func(fl validator.FieldLevel) bool {
			return errors.ValidateName(fl.Field().String()) == nil
		})

		validateInst = v
	})
	return validateInst
}

// Struct validates s and converts the first failure into a structured error
// with the given code.
func Struct(s any, code errors.Code) error {
	return Convert(Instance().Struct(s), code)
}

// Convert normalizes validator errors into structured errors.
func Convert(err error, code errors.Code) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		return errors.Wrap(code, err, "%s failed validation for tag '%s'", FieldName(fe), fe.Tag())
	}
	return errors.Wrap(code, err, "validation failed")
}

// FieldName renders the failing field as a lowercase dotted path, e.g.
// "catalog.screens[3].design".
func FieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}

// Field formats an indexed field path for semantic checks.
func Field(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}
