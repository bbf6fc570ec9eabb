package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
//
// Validation failures are returned as one error listing every invalid field.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationError(validationErrors)
		}

		// Arrays are validated per element
		var sliceErrors binding.SliceValidationError
		if errors.As(err, &sliceErrors) {
			for _, e := range sliceErrors {
				if errors.As(e, &validationErrors) {
					return ValidationError(validationErrors)
				}
			}
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// ValidationError joins the field errors into one readable error.
func ValidationError(errs validator.ValidationErrors) error {
	texts := make([]string, 0, len(errs))
	for _, e := range errs {
		texts = append(texts, ValidationErrorToText(e))
	}

	return fmt.Errorf("%w: %s", ErrInvalidBody, strings.Join(texts, ", "))
}

// ValidationErrorToText returns a human readable description of a failed validation.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		if isLength(e.Kind()) {
			return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "min":
		if isLength(e.Kind()) {
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", e.Field(), e.Param())
	case "rgbcolor":
		return fmt.Sprintf("%s must be a color in the #RRGGBB format", e.Field())
	case "iso4217":
		return fmt.Sprintf("%s must be an ISO 4217 currency code", e.Field())
	}

	return fmt.Sprintf("%s is not valid", e.Field())
}

// isLength reports whether min and max validate the length for values of kind k.
func isLength(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// BindQuery binds the query string of the request to data.
func BindQuery(c *gin.Context, data any) error {
	if err := c.ShouldBindQuery(data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQueryString, err)
	}

	return nil
}
