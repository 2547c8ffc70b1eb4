package config

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their env tag,
// so errors name the variable the user has to set.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// checkSettings runs the struct rules on settings and converts the first
// failure into a configuration error. Fields are checked in declaration
// order, so the struct layout defines which problem is reported first.
func checkSettings(settings interface{}) error {
	err := newValidator().Struct(settings)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return clierrors.Wrap(err, clierrors.Configuration)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", "required_with":
		return clierrors.MissingSetting(fe.Field())
	default:
		return clierrors.InvalidSetting(fe.Field(), toString(fe.Value()))
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// ParseBool parses a boolean-like setting: 1/true/yes/on or 0/false/no/off,
// case-insensitive. Anything else, including an empty value, is an error.
func ParseBool(name, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, clierrors.InvalidSetting(name, value)
	}
}

// ParsePort parses a TCP port number.
func ParsePort(name, value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, clierrors.NewConfigError("%s must be an integer.", name)
	}
	if port < 1 || port > 65535 {
		return 0, clierrors.NewConfigError("%s must be between 1 and 65535.", name)
	}
	return port, nil
}

// SplitRecipients splits a recipient list on ',' and ';', trimming each
// entry and dropping empty ones. Order is preserved.
func SplitRecipients(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			recipients = append(recipients, p)
		}
	}
	return recipients
}
