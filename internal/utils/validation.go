package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

// newValidator builds a validator that reports fields by their JSON names,
// so error payloads match what the client actually sent. The notblank rule
// rejects whitespace-only strings that "required" would let through.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate performs validation on a struct.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// BindAndValidate binds the request body to a struct and validates it.
// If either step fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	if err := Validate(obj); err != nil {
		field, msg := firstValidationError(err)
		BadRequestField(c, field, msg)
		return false
	}
	return true
}

// firstValidationError turns a validator error into a field name and a
// human-readable message for the 400 payload.
func firstValidationError(err error) (string, string) {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "", err.Error()
	}

	e := errs[0]
	switch e.Tag() {
	case "required", "notblank":
		return e.Field(), fmt.Sprintf("%s is required", e.Field())
	case "min":
		return e.Field(), fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return e.Field(), fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return e.Field(), fmt.Sprintf("%s is invalid", e.Field())
	}
}
