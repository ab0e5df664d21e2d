package schema

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/graphclip/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the document's structure. It returns nil or an
// INVALID_DOCUMENT error naming the first failing field, for example
// "graph.connections[2].to.pinName must not be empty".
func Validate(doc *Document) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "document is empty")
	}
	if err := validate.Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "%s", formatFieldError(fieldErrs[0]))
		}
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid document")
	}
	return nil
}

// Valid reports whether the document passes [Validate].
func Valid(doc *Document) bool {
	return Validate(doc) == nil
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	// Drop the root type name.
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch e.Tag() {
	case "required":
		if e.Kind() == reflect.String {
			return field + " must not be empty"
		}
		return field + " is required"
	default:
		return field + " is invalid"
	}
}
