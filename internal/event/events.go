// Package event define el contrato de cable compartido entre el lado comando
// y la réplica de lectura. Es lo único que ambos lados comparten: cada uno es
// dueño de su propio tipo Product.
package event

import "github.com/google/uuid"

// Event es el contrato mínimo de un evento de dominio publicable.
type Event interface {
	// EventName identifica el tipo de evento (enrutamiento de topics y logs).
	EventName() string
	// AggregateID identifica el producto afectado (clave de partición).
	AggregateID() uuid.UUID
}

// ProductCreated se emite cuando el lado comando inserta un producto.
// El stock inicial en la réplica es 0 por construcción.
type ProductCreated struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

func (ProductCreated) EventName() string { return "ProductCreated" }

func (e ProductCreated) AggregateID() uuid.UUID { return e.ID }

// ProductUpdated transporta el valor absoluto del stock, no un delta:
// re-aplicar el mismo evento en la réplica es idempotente.
type ProductUpdated struct {
	ID    uuid.UUID `json:"id"`
	Stock int       `json:"stock"`
}

func (ProductUpdated) EventName() string { return "ProductUpdated" }

func (e ProductUpdated) AggregateID() uuid.UUID { return e.ID }

// ProductDeleted se emite cuando el lado comando elimina un producto.
type ProductDeleted struct {
	ID uuid.UUID `json:"id"`
}

func (ProductDeleted) EventName() string { return "ProductDeleted" }

func (e ProductDeleted) AggregateID() uuid.UUID { return e.ID }
