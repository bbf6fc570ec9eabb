package httputil

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var rgbColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RegisterValidations registers the custom validations with the validator gin uses for binding.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("rgbcolor", validateRGBColor)
}

// validateRGBColor accepts colors in #RRGGBB notation. Empty values are valid,
// use "required" to enforce a color.
func validateRGBColor(fl validator.FieldLevel) bool {
	color := fl.Field().String()
	return color == "" || rgbColor.MatchString(color)
}
