package owners

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Códigos de error por campo (los mismos que esperan las vistas).
const (
	CodeRequired     = "required"
	CodeDuplicate    = "duplicate"
	CodeNotFound     = "notFound"
	CodeTypeMismatch = "typeMismatch"
	CodePattern      = "pattern"

	// fecha parseable pero en el futuro; distinto de una fecha ilegible
	CodeFutureBirthDate = "typeMismatch.birthDate"
)

var defaultMessages = map[string]string{
	CodeRequired:        "is required",
	CodeDuplicate:       "is already in use",
	CodeNotFound:        "has not been found",
	CodeTypeMismatch:    "invalid value",
	CodePattern:         "must contain only digits",
	CodeFutureBirthDate: "invalid date",
}

type FieldError struct {
	Field   string
	Code    string
	Message string
}

// FieldErrors implementa error para viajar por los returns del Service;
// los handlers la recuperan con errors.As.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Code)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *FieldErrors) Reject(field, code string) {
	*e = append(*e, FieldError{Field: field, Code: code, Message: defaultMessages[code]})
}

func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Code devuelve el primer código registrado para el campo ("" si no hay).
func (e FieldErrors) Code(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Code
		}
	}
	return ""
}

func (e FieldErrors) Message(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	return out
}

func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	// Los errores se reportan con el nombre del input del formulario.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

func codeForTag(tag string) string {
	switch tag {
	case "required", "notblank":
		return CodeRequired
	case "number", "numeric":
		return CodePattern
	default:
		return tag
	}
}

func validateStruct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return FieldErrors{{Field: "", Code: "invalid", Message: err.Error()}}
	}

	var out FieldErrors
	for _, fe := range ve {
		out.Reject(fe.Field(), codeForTag(fe.Tag()))
	}
	return out
}

func isBlank(s string) bool {
	return validate.Var(s, "notblank") != nil
}

// ValidateOwner: los cinco campos son obligatorios y el teléfono solo admite dígitos.
func ValidateOwner(o Owner) FieldErrors {
	return validateStruct(o)
}

type petFields struct {
	Name      string `form:"name" validate:"notblank"`
	BirthDate string `form:"birthDate" validate:"notblank"`
}

type visitFields struct {
	Description string `form:"description" validate:"notblank"`
}
