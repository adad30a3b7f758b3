package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report the environment variable instead of the Go field name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("env"); name != "" {
			return name
		}
		return field.Name
	})
	return v
}

// Validate checks the configuration and returns one error per offending
// environment variable, combined.
func (c Config) Validate() error {
	combined := multierr.Combine(c.invalid...)
	err := validate.Struct(c)
	if err == nil {
		return combined
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return multierr.Append(combined, err)
	}
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, describe(fe))
	}
	return combined
}

func describe(fe validator.FieldError) error {
	name := fe.Field()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%s is not set", name)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "url":
		return fmt.Errorf("%s must be a URL, got %q", name, fe.Value())
	case "gte", "gt":
		return fmt.Errorf("%s is invalid (must be %s %s), got %v", name, fe.Tag(), fe.Param(), fe.Value())
	case "hostname_port":
		return fmt.Errorf("%s must be host:port, got %q", name, fe.Value())
	default:
		return fmt.Errorf("%s is invalid (%s), got %v", name, fe.Tag(), fe.Value())
	}
}
