package consumer

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/validation"
)

// ValidationFailedError señala que un evento replicado no superó la
// validación en la réplica. Transporta la lista completa de errores y un
// mensaje legible con los mensajes unidos por "; ". Es permanente:
// re-entregar el mismo evento nunca lo vuelve válido, así que el runtime
// del bus debe descartarlo (dejando rastro) en lugar de reintentar.
type ValidationFailedError struct {
	Event  string
	Errors validation.List
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s rechazado: %s", e.Event, e.Errors.Join("; "))
}

// Permanent marca el fallo como no re-entregable.
func (e *ValidationFailedError) Permanent() bool { return true }

// MalformedEventError señala un payload indecodificable: veneno para la
// cola, la re-entrega tampoco ayuda.
type MalformedEventError struct {
	Event string
	Err   error
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("decodificar %s: %v", e.Event, e.Err)
}

func (e *MalformedEventError) Unwrap() error { return e.Err }

// Permanent marca el fallo como no re-entregable.
func (e *MalformedEventError) Permanent() bool { return true }
