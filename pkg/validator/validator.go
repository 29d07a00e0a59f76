package validator

import (
	"reflect"

	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
	// Validate checks struct tags when inf is a struct (or pointer to one) and accepts anything else
	Validate(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New(validators.WithRequiredStructEnabled())
	return &validator{
		validator: v,
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(inf interface{}) error {
	return v.validator.Struct(inf)
}

// Validate func
func (v *validator) Validate(inf interface{}) error {
	t := reflect.TypeOf(inf)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return v.validator.Struct(inf)
}
