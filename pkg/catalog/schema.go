package catalog

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// FieldRule constrains one field of a request body. Required only covers
// presence: a missing or null field fails it. Rules is a validator tag list
// (e.g. "string,required") applied once the field is present, so a
// "required" tag there rejects empty values such as "".
type FieldRule struct {
	Name     string
	Required bool
	Rules    string
}

// Schema is an ordered set of field rules. Fields it does not name are not
// checked and pass through untouched.
type Schema struct {
	fields   []FieldRule
	validate *validator.Validate
}

// NewSchema creates a schema evaluating the given rules in order
func NewSchema(fields ...FieldRule) *Schema {
	v := validator.New()
	// "string" asserts the JSON value is a string; validator has no type tag of its own
	if err := v.RegisterValidation("string", isString); err != nil {
		panic(fmt.Sprintf("catalog: register string validation: %v", err))
	}
	// the builtin "number" also accepts digit-only strings such as "15"
	if err := v.RegisterValidation("number", isNumber); err != nil {
		panic(fmt.Sprintf("catalog: register number validation: %v", err))
	}
	return &Schema{fields: fields, validate: v}
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

// isNumber accepts numeric kinds only. Decoded JSON numbers are float64.
func isNumber(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// Fields returns the schema's field rules in validation order
func (s *Schema) Fields() []FieldRule {
	return append([]FieldRule(nil), s.fields...)
}

// Validate checks the record against every field rule without stopping at
// the first violation. It returns a *Failure of KindValidation listing one
// message per violated field in schema order.
func (s *Schema) Validate(record Record) error {
	var messages []string
	for _, field := range s.fields {
		value, present := record[field.Name]
		if !present || value == nil {
			if field.Required {
				messages = append(messages, requiredMessage(field.Name))
			}
			continue
		}
		if field.Rules == "" {
			continue
		}
		if err := s.validate.Var(value, field.Rules); err != nil {
			messages = append(messages, fieldMessage(field.Name, err))
		}
	}
	if len(messages) > 0 {
		return NewValidationFailure(messages)
	}
	return nil
}

func requiredMessage(field string) string {
	return fmt.Sprintf("%s is a required field", field)
}

// fieldMessage converts the first failing validator tag into a client message
func fieldMessage(field string, err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Sprintf("%s is invalid", field)
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required":
		return requiredMessage(field)
	case "string":
		return fmt.Sprintf("%s must be a `string` type", field)
	case "number", "numeric":
		return fmt.Sprintf("%s must be a `number` type", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s is invalid (%s=%s)", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
