package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser un número mayor que cero")
	ErrEmptySelection     = errors.New("no hay ítems seleccionados")
	ErrUnknownDocType     = errors.New("tipo de documento desconocido")
	ErrStockNotFound      = errors.New("stock no encontrado")
	ErrStockNotInOrder    = errors.New("el stock no pertenece a la orden")
	ErrLinesNotLoaded     = errors.New("las líneas asignadas aún no se han cargado")
	ErrDocumentCompleted  = errors.New("el documento ya fue completado")
	ErrCollectInFlight    = errors.New("hay una recolección en curso para este documento")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrGatewayUnavailable = errors.New("ERP no disponible")
)

// ValidationError señala un campo obligatorio ausente o inválido antes de cualquier llamada remota.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// RemoteError es un fallo "suave" del ERP: la respuesta llegó con success=false.
// El mensaje se muestra al operario tal cual; no hay reintento automático.
type RemoteError struct {
	Message string
	Errors  []string
}

func (e *RemoteError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Errors, "; ") + ")"
}

// IsRemote indica si err es (o envuelve) un RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
