// Package validate valida DTOs com go-playground/validator usando os nomes JSON dos campos
// e as regras de documento da NF-e (CPF, CNPJ, UF).
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
			return nfe.IsValidCNPJ(fl.Field().String())
		})
		_ = v.RegisterValidation("cpfcnpj", func(fl validator.FieldLevel) bool {
			return nfe.ValidateRecipientTaxID(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
			return nfe.IsKnownUF(strings.ToUpper(fl.Field().String()))
		})
		instance = v
	})
	return instance
}

// Struct valida um struct e devolve uma única mensagem "campo regra; campo regra".
func Struct(s any) error {
	if s == nil {
		return fmt.Errorf("is nil")
	}
	if !isStruct(s) {
		return fmt.Errorf("not a struct")
	}
	var validationErrors validator.ValidationErrors
	var invalidValidationError *validator.InvalidValidationError

	err := get().Struct(s)
	if err == nil {
		return nil
	}

	if errors.As(err, &validationErrors) {
		parts := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			parts = append(parts, describe(fieldErr))
		}
		return errors.New(strings.Join(parts, "; "))
	} else if errors.As(err, &invalidValidationError) {
		return fmt.Errorf("invalid validation error: %w", err)
	}
	return fmt.Errorf("unknown validation error: %w", err)
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " é obrigatório"
	case "cnpj":
		return field + " não é um CNPJ válido"
	case "cpfcnpj":
		return field + " não é um CPF/CNPJ válido"
	case "uf":
		return field + " não é uma UF válida"
	case "oneof":
		return fmt.Sprintf("%s deve ser um de [%s]", field, fe.Param())
	case "min", "max", "len":
		return fmt.Sprintf("%s %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s %s", field, fe.Tag())
}

func isStruct(s any) bool {
	r := reflect.TypeOf(s)
	if r.Kind() == reflect.Ptr {
		r = r.Elem()
	}
	return r.Kind() == reflect.Struct
}
