package validators

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func isDate(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func register(v *validator.Validate) {
	_ = v.RegisterValidation("date", isDate)
	_ = v.RegisterValidation("clock", isClock)
}

// New returns a standalone validator with the custom tags, for input that
// does not come through gin binding.
func New() *validator.Validate {
	v := validator.New()
	register(v)
	return v
}

// RegisterGin adds the custom tags to gin's binding validator.
func RegisterGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}
