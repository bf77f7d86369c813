package validation

import "strings"

// Error representa un fallo de regla de negocio atribuido a un campo.
// Se devuelve como dato, nunca se lanza: los resultados esperados de una
// operación (código duplicado, stock en cero) no interrumpen el flujo.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewError construye un error de validación para el campo dado.
func NewError(field, message string) Error {
	return Error{Field: field, Message: message}
}

// List agrupa los errores de validación de una operación. Vacía = éxito.
type List []Error

// HasErrors indica si la operación fue rechazada.
func (l List) HasErrors() bool {
	return len(l) > 0
}

// Join concatena los mensajes con el separador dado.
func (l List) Join(sep string) string {
	msgs := make([]string, 0, len(l))
	for _, e := range l {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, sep)
}
