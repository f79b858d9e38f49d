// Package validation envuelve go-playground/validator para devolver domain.ValidationError
// con el nombre JSON de cada campo y mensajes en español.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// Validator validador compartido; es seguro para uso concurrente.
type Validator struct {
	v *validator.Validate
}

// New registra el nombre JSON como nombre de campo y la regla payment_type.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("payment_type", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParsePaymentType(fl.Field().String())
		return ok
	})
	return &Validator{v: v}
}

// Struct valida s. Devuelve *domain.ValidationError con un mensaje por campo.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "email inválido"
	case "uuid":
		return "identificador inválido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "eqfield":
		return "no coincide"
	case "payment_type":
		return "tipo de pago inválido (Cash, Credit o Partial)"
	default:
		return "valor inválido"
	}
}

var idValidator = validator.New()

// ID indica si id tiene la forma de un identificador (UUID canónico), la misma regla que
// `validate:"uuid"` en los DTO. Un id de ruta mal formado se responde como no encontrado
// sin llegar a la base de datos.
func ID(id string) bool {
	return idValidator.Var(id, "required,uuid") == nil
}
