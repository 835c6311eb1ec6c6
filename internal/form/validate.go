// Package form holds the venue, artist and show forms: binding targets for
// both the HTML form posts and the JSON API, with their validation rules and
// conversions to and from the models.
package form

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9()+\-. ]{7,20}$`)

// StartTimeLayouts are tried in order when parsing a show's start time.
// Values without a zone are taken as UTC.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by the name the client sent them under.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "query", "param"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "usstate", func(fl validator.FieldLevel) bool {
		return IsState(fl.Field().String())
	})
	mustRegister(v, "genre", func(fl validator.FieldLevel) bool {
		return IsGenre(fl.Field().String())
	})
	mustRegister(v, "starttime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})

	return v
}

// Struct validates v with the form rules, including the custom phone,
// usstate, genre and starttime tags.
func Struct(v any) error {
	return validate.Struct(v)
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ParseStartTime parses s with the first matching layout in
// StartTimeLayouts and returns it in UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var err error
	for _, layout := range StartTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
