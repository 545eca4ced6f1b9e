package validator

import (
	"fmt"
	"reflect"
	"strings"

	"go-parts-inventory/pkg/optional"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}

var validate = validator.New()

func init() {
	// Report fields by their JSON name so clients can map errors back to the body
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
	validate.RegisterValidation("notblank", validators.NotBlank)

	// Optional fields validate their value only when one was sent
	validate.RegisterCustomTypeFunc(optionalValue[string], optional.Optional[string]{})
	validate.RegisterCustomTypeFunc(optionalValue[float64], optional.Optional[float64]{})
	validate.RegisterCustomTypeFunc(optionalValue[int], optional.Optional[int]{})
}

func optionalValue[T any](field reflect.Value) interface{} {
	if o, ok := field.Interface().(optional.Optional[T]); ok && o.Present() {
		return o.Value
	}
	return nil
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
		}
		for _, err := range validationErrs {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
