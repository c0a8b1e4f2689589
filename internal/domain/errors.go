package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Cada uno corresponde a un tipo de fallo
// que la capa HTTP traduce a un código de estado.
var (
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrValidation      = errors.New("entrada inválida")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrInternal        = errors.New("error interno")
)

// Kind identificador legible por máquina del tipo de error.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindValidation      Kind = "VALIDATION"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindInternal        Kind = "INTERNAL"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrForbidden, KindForbidden},
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrConflict, KindConflict},
	{ErrInternal, KindInternal},
}

// KindOf devuelve el tipo de un error envuelto con fmt.Errorf("%w: ...").
// Cualquier error no tipado se considera INTERNAL.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsTyped indica si el error ya pertenece a la taxonomía de dominio.
func IsTyped(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return true
		}
	}
	return false
}

// Internal envuelve un fallo de almacenamiento o de un colaborador externo como ErrInternal,
// salvo que ya sea un error tipado (por ejemplo ErrNotFound devuelto por un repositorio).
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsTyped(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
