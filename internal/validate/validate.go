// Package validate checks request and record structs against their
// `validate` tags and reports one reason per offending field.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"movie-catalog/internal/model"
	"movie-catalog/pkg/apierror"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			return model.Genre(fl.Field().String()).Valid()
		})

		instance = v
	})

	return instance
}

// Struct validates s. It returns nil or an *apierror.APIError carrying the
// per-field reasons.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierror.Validation(map[string]string{"body": err.Error()})
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fieldPath(fe)
		if _, seen := fields[path]; seen {
			continue
		}
		fields[path] = message(path, fe)
	}

	return apierror.Validation(fields)
}

// fieldPath drops the root struct name from the namespace, so
// "Movie.actors[0].actorName" becomes "actors[0].actorName".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func message(path string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must not be empty", path)
		}
		return fmt.Sprintf("%s is required", path)
	case "min":
		if fe.Kind() == reflect.Slice {
			if fe.Param() == "1" {
				return fmt.Sprintf("%s must not be empty", path)
			}
			return fmt.Sprintf("%s must contain at least %s entries", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", path, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", path, fe.Param())
	case "genre":
		names := make([]string, 0, len(model.Genres))
		for _, g := range model.Genres {
			names = append(names, string(g))
		}
		return fmt.Sprintf("%s must be one of: %s", path, strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", path, fe.Tag())
	}
}
