package utils

import (
	"strings"
	"sync"

	"colornotes/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterCustomValidators adds the note specific tags to v.
func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("notecolor", ValidateNoteColorRule)
	v.RegisterValidation("notblank", ValidateNotBlankRule)
}

// InitValidator registers the custom tags on gin's binding engine. Safe to
// call more than once.
func InitValidator() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			RegisterCustomValidators(v)
		}
	})
}

// ValidateNoteColorRule accepts palette colors only. A blank value is
// allowed and later becomes the default color.
func ValidateNoteColorRule(fl validator.FieldLevel) bool {
	c := strings.TrimSpace(fl.Field().String())
	return c == "" || model.IsPaletteColor(c)
}

// ValidateNotBlankRule rejects strings made only of whitespace.
func ValidateNotBlankRule(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
