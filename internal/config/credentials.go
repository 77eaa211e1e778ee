package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNoCredentials is returned when a command needs credentials and none
// were stored or provided through the environment.
var ErrNoCredentials = errors.New("no credentials stored, run 'teamwork auth -c <company_id> -t <token>' first")

// Credentials identify a Teamwork tenant and the user acting on it.
// They are loaded once and passed by value to whatever needs them.
type Credentials struct {
	CompanyID string `json:"company_id" validate:"required,hostname_rfc1123"`
	Token     string `json:"token" validate:"required"`
}

// IsZero reports whether no credential field is set.
func (c Credentials) IsZero() bool {
	return c.CompanyID == "" && c.Token == ""
}

// Validate checks that both fields are present and the company id is usable
// as a subdomain.
func (c Credentials) Validate() error {
	return validateStruct(c)
}

// MaskedToken returns the token with all but its last four characters hidden.
func (c Credentials) MaskedToken() string {
	if len(c.Token) <= 4 {
		return strings.Repeat("*", len(c.Token))
	}
	return strings.Repeat("*", len(c.Token)-4) + c.Token[len(c.Token)-4:]
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// fieldError converts a single validation failure into a readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "hostname_rfc1123":
		return field + " must be a valid subdomain (e.g. mycompany)"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
