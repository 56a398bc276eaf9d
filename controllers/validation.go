package controllers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ExpenseTracker/pkg/messages"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name so they match the message table
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationMessage turns the first failed rule into a client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return messages.InvalidInput
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return messages.ForField(fe.Field())
	case "min":
		if fe.Field() == "password" {
			return messages.PasswordTooShort
		}
	case "eqfield":
		return messages.PasswordConfirmationMismatch
	}
	return messages.InvalidInput
}
