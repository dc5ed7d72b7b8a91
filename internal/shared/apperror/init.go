package apperror

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init registers a tag-name function on Gin's validator so that field
// errors report the json name (e.g. `hire_date`) instead of the Go name,
// plus the custom `hiredate` rule, so a malformed date is reported in the
// same field list as every other violation.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("hiredate", func(fl validator.FieldLevel) bool {
			return IsParseableDate(fl.Field().String())
		})
	}
}

// IsParseableDate accepts a plain date or an RFC3339 timestamp.
func IsParseableDate(value string) bool {
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}
