// Package validation centraliza la validación de DTOs con go-playground/validator
// y traduce los fallos a domain.ErrValidation con mensajes en español.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/restaurante-api/internal/domain"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("password", validatePassword)
		// Usar el nombre JSON del campo en los mensajes.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

// Struct valida un DTO según sus tags `validate`. Devuelve un error envuelto en
// domain.ErrValidation con el primer campo inválido.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, message(verrs[0]))
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// MaxPasswordBytes límite de bcrypt: a partir de 72 bytes la contraseña no se puede hashear.
const MaxPasswordBytes = 72

// PasswordStrong indica si la contraseña cumple: ≥ 8 caracteres (runas), ≤ 72 bytes,
// mayúscula, minúscula, dígito y carácter especial.
func PasswordStrong(p string) bool {
	if utf8.RuneCountInString(p) < 8 || len(p) > MaxPasswordBytes {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

func validatePassword(fl validator.FieldLevel) bool {
	return PasswordStrong(fl.Field().String())
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", f)
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s debe tener al menos %s elemento(s)", f, fe.Param())
		}
		return fmt.Sprintf("%s debe tener al menos %s caracteres", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s no puede superar %s caracteres", f, fe.Param())
	case "email":
		return fmt.Sprintf("%s no es un email válido", f)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", f, fe.Param())
	case "password":
		return "la contraseña debe tener entre 8 caracteres y 72 bytes, una mayúscula, una minúscula, un número y un carácter especial"
	}
	return fmt.Sprintf("%s no es válido (%s)", f, fe.Tag())
}
