package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/query/entity"
)

// ProductRepository es el puerto de persistencia de la réplica. Misma forma
// que el del lado comando pero sobre el tipo Product propio de la réplica:
// los dos lados solo comparten el contrato de eventos, nunca código de
// dominio. No encontrado se representa como (nil, nil).
type ProductRepository interface {
	Add(p *entity.Product)
	Remove(p *entity.Product)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDDetached(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListDetached(ctx context.Context) ([]*entity.Product, error)
}

// UnitOfWork confirma atómicamente las mutaciones pendientes del
// repositorio de la réplica.
type UnitOfWork interface {
	Commit(ctx context.Context) error
}
