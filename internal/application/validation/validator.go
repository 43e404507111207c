// Package validation valida los payloads de mutación antes de enviarlos al
// backend, con una instancia única de go-playground/validator.
//
// Los errores se devuelven por campo (nombre JSON) para mostrarlos junto al
// control que los provocó; nunca llegan a la red.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/subastas-admin/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// unsafePattern marcado, esquemas y manejadores de eventos que no deben llegar a textos visibles.
var unsafePattern = regexp.MustCompile(`(?i)(<\s*/?\s*(script|iframe|object|embed|style)\b|javascript\s*:|data\s*:\s*text/html|\bon[a-z]+\s*=)`)

// FieldError error de un campo.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Errors conjunto de errores de un payload. Se compara con domain.ErrInvalidInput
// y, si algún campo tiene texto peligroso, también con domain.ErrUnsafeText.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	if len(e.Fields) == 0 {
		return "validación fallida"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Is permite errors.Is contra los sentinels de dominio.
func (e *Errors) Is(target error) bool {
	if target == domain.ErrInvalidInput {
		return true
	}
	if target == domain.ErrUnsafeText {
		for _, f := range e.Fields {
			if f.Tag == "safetext" {
				return true
			}
		}
	}
	return false
}

// Map errores indexados por campo.
func (e *Errors) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// Validator devuelve la instancia única, con los validadores propios registrados.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("safetext", func(fl validator.FieldLevel) bool {
			return SafeText(fl.Field().String())
		})
	})
	return validate
}

// Struct valida s. Devuelve nil o *Errors.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &Errors{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// Field construye un *Errors de un solo campo, para reglas que no caben en tags.
func Field(field, tag, msg string) error {
	return &Errors{Fields: []FieldError{{Field: field, Tag: tag, Message: msg}}}
}

// SafeText indica si s no contiene marcado ejecutable ni caracteres de control.
func SafeText(s string) bool {
	if unsafePattern.MatchString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
	}
	return true
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		return "debe ser al menos " + fe.Param()
	case "max":
		return "no puede superar " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "gtfield":
		return "debe ser posterior a " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "email":
		return "no es un correo válido"
	case "url":
		return "no es una URL válida"
	case "safetext":
		return "contiene texto no permitido"
	default:
		return "no es válido (" + fe.Tag() + ")"
	}
}
