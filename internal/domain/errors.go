package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrFetchFailed  = errors.New("consulta al índice de ventas fallida")
	ErrNotReady     = errors.New("los datos del dashboard aún no están disponibles")
)

// FetchError es el único tipo de fallo de la fuente de datos: timeout, respuesta
// malformada o error de query reportado por el backend colapsan aquí.
// Error() devuelve el mensaje de la causa, que es lo que ve el usuario.
type FetchError struct {
	Op  string // "fetch" | "search"
	Err error
}

// NewFetchError envuelve la causa de un fetch/search fallido.
func NewFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return ErrFetchFailed.Error()
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrFetchFailed) sobre cualquier FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
