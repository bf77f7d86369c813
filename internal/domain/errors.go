package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrDuplicate: violación del índice único de code detectada por el
	// almacén. Esperado bajo inserciones concurrentes cuando el duplicado se
	// cuela más allá del pre-chequeo en proceso; la capa HTTP lo traduce a un
	// conflicto, nunca a un error de validación.
	ErrDuplicate = errors.New("recurso duplicado")
)
