package service

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/query/entity"
	"github.com/jhoicas/almacen-api/internal/validation"
)

// ProductValidator reglas con consulta al almacén de la réplica. La
// unicidad también se verifica aquí: una re-entrega de ProductCreated se
// convierte en un rechazo observable, no en una fila duplicada ni un crash.
type ProductValidator struct {
	repo ProductRepository
}

// NewProductValidator construye el validador.
func NewProductValidator(repo ProductRepository) *ProductValidator {
	return &ProductValidator{repo: repo}
}

// ValidateInsert verifica la unicidad del código en la réplica.
func (v *ProductValidator) ValidateInsert(ctx context.Context, p *entity.Product) (validation.List, error) {
	existing, err := v.repo.GetByCode(ctx, p.Code())
	if err != nil {
		return nil, fmt.Errorf("validate insert: %w", err)
	}
	if existing != nil {
		return validation.List{validation.NewError(
			"Code",
			fmt.Sprintf("A product with code '%s' already exists.", p.Code()),
		)}, nil
	}
	return nil, nil
}
