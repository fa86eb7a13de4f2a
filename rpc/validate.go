package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Defaulter inputs fill defaults before decoding, so keys missing from the
// payload keep them while explicit values, null included, override them.
type Defaulter interface {
	SetDefaults()
}

// Normalizer inputs clean up decoded values, i.e trim whitespace, before
// validation.
type Normalizer interface {
	Normalize()
}

// Validator inputs check rules struct tags cannot express.
type Validator interface {
	Validate() error
}

type fieldErrors interface {
	Fields() map[string]string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func isEmptyInput(input json.RawMessage) bool {
	trimmed := bytes.TrimSpace(input)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Decode fills dst, a pointer to an input struct, from the raw json input
// and validates it. Failures are returned as BAD_REQUEST errors.
func Decode(input json.RawMessage, dst interface{}) error {
	if defaulter, ok := dst.(Defaulter); ok {
		defaulter.SetDefaults()
	}

	if !isEmptyInput(input) {
		decoder := json.NewDecoder(bytes.NewReader(input))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(dst); err != nil {
			return decodeError(err)
		}
		if _, err := decoder.Token(); err != io.EOF {
			return BadRequest("Invalid input: trailing data after json value", nil)
		}
	}

	if normalizer, ok := dst.(Normalizer); ok {
		normalizer.Normalize()
	}

	fields := make(map[string]string)
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return Internal(err)
		}
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = fieldMessage(fieldErr)
		}
	}

	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			var withFields fieldErrors
			if !errors.As(err, &withFields) {
				return BadRequest(err.Error(), nil)
			}
			for field, message := range withFields.Fields() {
				if _, exists := fields[field]; !exists {
					fields[field] = message
				}
			}
		}
	}

	if len(fields) > 0 {
		return BadRequest("", fields)
	}
	return nil
}

func decodeError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return BadRequest("Invalid input: expected a json object", nil)
		}
		return BadRequest("", map[string]string{
			typeErr.Field: fmt.Sprintf("must be %s", typeErr.Type.Kind()),
		})
	}

	if strings.HasPrefix(err.Error(), "json: unknown field ") {
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return BadRequest("", map[string]string{field: "unknown field"})
	}

	return BadRequest("Invalid input: malformed json", nil)
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + fieldErr.Param()
	case "lte":
		return "must be less than or equal to " + fieldErr.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	case "uuid":
		return "must be a valid uuid"
	}
	return "failed " + fieldErr.Tag() + " validation"
}
