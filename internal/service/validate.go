package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const notBlankTag = "notblank"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlank)
	v.RegisterStructValidation(submitInputStructValidation, SubmitInput{})
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String {
		return strings.TrimSpace(fl.Field().String()) != ""
	}
	return false
}

// submitInputStructValidation requires an uploader with an id and a display name.
func submitInputStructValidation(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(SubmitInput)
	if !ok {
		return
	}
	if strings.TrimSpace(in.Uploader.ID) == "" {
		sl.ReportError(in.Uploader.ID, "uploadedBy.id", "ID", notBlankTag, "")
	}
	if strings.TrimSpace(in.Uploader.Name) == "" {
		sl.ReportError(in.Uploader.Name, "uploadedBy.name", "Name", notBlankTag, "")
	}
}

// validateStruct runs tag validation and converts failures into a *ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag, "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "is invalid"
	}
}
