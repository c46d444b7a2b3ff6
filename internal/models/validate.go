package models

import (
	"errors"
	"fmt"
	"mentorapp/internal/qerrors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by the names the client sends.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a request struct against its validate tags. The returned error is a
// qerrors.BadRequest naming the first offending field.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return qerrors.InvalidBody
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return qerrors.New(qerrors.BadRequest, fmt.Sprintf("o campo %s é obrigatório", fe.Field()))
	case "email":
		return qerrors.New(qerrors.BadRequest, "email inválido")
	case "min", "max":
		return qerrors.New(qerrors.BadRequest, fmt.Sprintf("o campo %s tem um tamanho inválido", fe.Field()))
	default:
		return qerrors.New(qerrors.BadRequest, fmt.Sprintf("o campo %s é inválido", fe.Field()))
	}
}
