// Package consumer contiene los adaptadores que traducen mensajes del bus
// en llamadas al servicio de la réplica, un consumidor por tipo de evento.
// Son deliberadamente delgados: extraer el payload, delegar, y elevar una
// lista de validación no vacía como error estructurado en vez de descartar
// el evento en silencio. Ningún consumidor reintenta por su cuenta.
package consumer

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/almacen-api/internal/event"
	"github.com/jhoicas/almacen-api/internal/query/service"
)

// ProductCreatedConsumer aplica ProductCreated a la réplica.
type ProductCreatedConsumer struct {
	services service.Factory
}

// NewProductCreatedConsumer construye el consumidor.
func NewProductCreatedConsumer(services service.Factory) *ProductCreatedConsumer {
	return &ProductCreatedConsumer{services: services}
}

// Consume decodifica el payload y delega la inserción replicada.
func (c *ProductCreatedConsumer) Consume(ctx context.Context, payload []byte) error {
	var evt event.ProductCreated
	if err := json.Unmarshal(payload, &evt); err != nil {
		return &MalformedEventError{Event: evt.EventName(), Err: err}
	}

	_, verrs, err := c.services().TryInsertFromEvent(ctx, evt)
	if err != nil {
		return err
	}
	if verrs.HasErrors() {
		return &ValidationFailedError{Event: evt.EventName(), Errors: verrs}
	}
	return nil
}

// ProductUpdatedConsumer aplica ProductUpdated a la réplica.
type ProductUpdatedConsumer struct {
	services service.Factory
}

// NewProductUpdatedConsumer construye el consumidor.
func NewProductUpdatedConsumer(services service.Factory) *ProductUpdatedConsumer {
	return &ProductUpdatedConsumer{services: services}
}

// Consume decodifica el payload y delega la asignación absoluta de stock.
func (c *ProductUpdatedConsumer) Consume(ctx context.Context, payload []byte) error {
	var evt event.ProductUpdated
	if err := json.Unmarshal(payload, &evt); err != nil {
		return &MalformedEventError{Event: evt.EventName(), Err: err}
	}

	_, verrs, err := c.services().TryUpdateFromEvent(ctx, evt)
	if err != nil {
		return err
	}
	if verrs.HasErrors() {
		return &ValidationFailedError{Event: evt.EventName(), Errors: verrs}
	}
	return nil
}

// ProductDeletedConsumer aplica ProductDeleted a la réplica.
type ProductDeletedConsumer struct {
	services service.Factory
}

// NewProductDeletedConsumer construye el consumidor.
func NewProductDeletedConsumer(services service.Factory) *ProductDeletedConsumer {
	return &ProductDeletedConsumer{services: services}
}

// Consume decodifica el payload y delega la eliminación replicada.
func (c *ProductDeletedConsumer) Consume(ctx context.Context, payload []byte) error {
	var evt event.ProductDeleted
	if err := json.Unmarshal(payload, &evt); err != nil {
		return &MalformedEventError{Event: evt.EventName(), Err: err}
	}

	_, verrs, err := c.services().TryDeleteFromEvent(ctx, evt)
	if err != nil {
		return err
	}
	if verrs.HasErrors() {
		return &ValidationFailedError{Event: evt.EventName(), Errors: verrs}
	}
	return nil
}
