package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/event"
	"github.com/jhoicas/almacen-api/internal/query/entity"
	"github.com/jhoicas/almacen-api/internal/validation"
)

// ProductService aplica a la réplica las mutaciones derivadas de eventos
// consumidos. Nunca publica: el flujo de eventos va en un solo sentido, del
// lado comando hacia la réplica, y re-publicar al aplicar crearía un ciclo.
//
// Mismo contrato de resultado que el lado comando: (nil, nil, nil) = no
// encontrado; lista poblada = evento rechazado por la validación de la
// réplica (el estado local puede diferir o el evento ser viejo).
type ProductService struct {
	repo      ProductRepository
	validator *ProductValidator
	uow       UnitOfWork
}

// Factory produce un ProductService con su propia unidad de trabajo.
// Cada evento consumido obtiene una instancia fresca.
type Factory func() *ProductService

// NewProductService construye el servicio de la réplica.
func NewProductService(repo ProductRepository, validator *ProductValidator, uow UnitOfWork) *ProductService {
	return &ProductService{repo: repo, validator: validator, uow: uow}
}

// GetProduct devuelve el producto o nil si no existe (lectura sin seguimiento).
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.repo.GetByIDDetached(ctx, id)
}

// GetProducts devuelve todos los productos de la réplica.
func (s *ProductService) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.repo.ListDetached(ctx)
}

// TryInsertFromEvent replica un ProductCreated: valida los atributos del
// evento, luego la unicidad en la réplica, y recién entonces inserta. Un
// evento re-entregado cae en el rechazo de unicidad.
func (s *ProductService) TryInsertFromEvent(ctx context.Context, evt event.ProductCreated) (*entity.Product, validation.List, error) {
	p, verrs := entity.NewProduct(evt.ID, evt.Code)
	if verrs.HasErrors() {
		return nil, verrs, nil
	}

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
	return p, nil, nil
}

// TryUpdateFromEvent replica un ProductUpdated asignando el valor absoluto
// de stock. Aplicarlo dos veces es un no-op la segunda.
func (s *ProductService) TryUpdateFromEvent(ctx context.Context, evt event.ProductUpdated) (*entity.Product, validation.List, error) {
	p, err := s.repo.GetByID(ctx, evt.ID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, nil
	}

	if verrs := p.ValidateUpdateStock(evt.Stock); verrs.HasErrors() {
		return p, verrs, nil
	}

	p.UpdateStock(evt.Stock)
	if err := s.uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return p, nil, nil
}

// TryDeleteFromEvent replica un ProductDeleted. Solo legal con stock en
// cero en la réplica; si diverge, el rechazo queda en manos del consumidor.
func (s *ProductService) TryDeleteFromEvent(ctx context.Context, evt event.ProductDeleted) (*entity.Product, validation.List, error) {
	p, err := s.repo.GetByID(ctx, evt.ID)
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
	return p, nil, nil
}
