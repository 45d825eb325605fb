package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateTimeouts, Config{})
	return v
}

// validateTimeouts keeps a Bedrock call inside the response write deadline,
// otherwise http.Server cuts the connection before the failure is classified.
// A zero write timeout means no deadline.
func validateTimeouts(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.Server.WriteTimeout > 0 && c.AWS.RequestTimeout >= c.Server.WriteTimeout {
		sl.ReportError(c.AWS.RequestTimeout, "aws.request_timeout", "RequestTimeout", "ltfield", "server.write_timeout")
	}
}

// Validate checks if the configuration is valid. Only the first failing
// field is reported.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("missing %s", field)
	case "required_with":
		return fmt.Errorf("missing %s (required with %s)", field, fe.Param())
	case "ltfield":
		return fmt.Errorf("invalid %s: %v (must be less than %s)", field, fe.Value(), fe.Param())
	case "oneof":
		return fmt.Errorf("invalid %s: %v (want one of: %s)", field, fe.Value(), fe.Param())
	default:
		return fmt.Errorf("invalid %s: %v", field, fe.Value())
	}
}
