package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/command/entity"
	"github.com/jhoicas/almacen-api/internal/event"
	"github.com/jhoicas/almacen-api/internal/validation"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ProductService orquesta las mutaciones del lado comando:
// validar → mutar → commit → publicar. El evento se publica estrictamente
// después de que el commit local tuvo éxito, nunca antes.
//
// Contrato de resultado de las operaciones Try*: lista vacía = éxito;
// producto nil con lista vacía = no encontrado; producto no nil con lista
// poblada = encontrado pero rechazado. Los resultados esperados de negocio
// siempre se devuelven como datos; el error de Go queda para fallos de
// infraestructura (almacén caído, violación de constraint).
type ProductService struct {
	repo      ProductRepository
	validator *ProductValidator
	uow       UnitOfWork
	publisher EventPublisher
	log       *logger.Logger
}

// Factory produce un ProductService con su propia unidad de trabajo.
// Cada petición obtiene una instancia fresca: todo el estado vive en el
// almacén, no hay estado mutable compartido entre peticiones.
type Factory func() *ProductService

// NewProductService construye el servicio.
func NewProductService(
	repo ProductRepository,
	validator *ProductValidator,
	uow UnitOfWork,
	publisher EventPublisher,
	log *logger.Logger,
) *ProductService {
	return &ProductService{
		repo:      repo,
		validator: validator,
		uow:       uow,
		publisher: publisher,
		log:       log,
	}
}

// GetProduct devuelve el producto o nil si no existe (lectura sin seguimiento).
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.repo.GetByIDDetached(ctx, id)
}

// GetProducts devuelve todos los productos (lectura sin seguimiento).
func (s *ProductService) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.repo.ListDetached(ctx)
}

// TryInsert intenta insertar un producto nuevo. Si la unicidad del código
// falla devuelve el producto rechazado (sin persistir) con los errores, sin
// tocar el almacén ni el bus.
func (s *ProductService) TryInsert(ctx context.Context, p *entity.Product) (*entity.Product, validation.List, error) {
	verrs, err := s.validator.ValidateInsert(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	if verrs.HasErrors() {
		return p, verrs, nil
	}

	s.repo.Add(p)
	if err := s.uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, event.ProductCreated{ID: p.ID(), Code: p.Code()})
	return p, nil, nil
}

// TryDelete intenta eliminar un producto. Solo es legal con stock en cero.
func (s *ProductService) TryDelete(ctx context.Context, id uuid.UUID) (*entity.Product, validation.List, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, nil
	}

	if verrs := p.ValidateRemove(); verrs.HasErrors() {
		return p, verrs, nil
	}

	s.repo.Remove(p)
	if err := s.uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, event.ProductDeleted{ID: p.ID()})
	return p, nil, nil
}

// TryAddStock incrementa el stock en 1. Siempre legal sobre un producto
// existente.
func (s *ProductService) TryAddStock(ctx context.Context, id uuid.UUID) (*entity.Product, validation.List, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, nil
	}

	p.AddStock()
	if err := s.uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, event.ProductUpdated{ID: p.ID(), Stock: p.Stock()})
	return p, nil, nil
}

// TryRemoveStock decrementa el stock en 1 tras validar que no esté en cero.
func (s *ProductService) TryRemoveStock(ctx context.Context, id uuid.UUID) (*entity.Product, validation.List, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, nil
	}

	if verrs := p.ValidateRemoveStock(); verrs.HasErrors() {
		return p, verrs, nil
	}

	p.RemoveStock()
	if err := s.uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, event.ProductUpdated{ID: p.ID(), Stock: p.Stock()})
	return p, nil, nil
}

// publish emite el evento tras un commit exitoso. Un fallo de publicación
// es una falta de entrega recuperable: se registra y no se propaga, el
// estado local ya está confirmado y no se revierte.
func (s *ProductService) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Error().
			Err(err).
			Str("event", evt.EventName()).
			Str("product_id", evt.AggregateID().String()).
			Msg("publicar evento de dominio")
	}
}
