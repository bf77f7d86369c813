package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/query/entity"
)

// La réplica re-valida los atributos del evento: no confía a ciegas en lo
// que llega por el bus.
func TestNewProduct_RevalidaAtributosDelEvento(t *testing.T) {
	id := uuid.New()

	p, errs := entity.NewProduct(id, "ABCD1234")
	require.False(t, errs.HasErrors())
	assert.Equal(t, id, p.ID())
	assert.Equal(t, 0, p.Stock())

	p, errs = entity.NewProduct(id, "")
	assert.Nil(t, p)
	require.Len(t, errs, 1)
	assert.Equal(t, "Code field is required.", errs[0].Message)

	p, errs = entity.NewProduct(id, "ABC")
	assert.Nil(t, p)
	require.Len(t, errs, 1)
	assert.Equal(t, "Code must be exactly 8 characters.", errs[0].Message)
}

// La asignación es absoluta: re-aplicar el mismo valor es un no-op.
func TestUpdateStock_Idempotente(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 2)

	p.UpdateStock(5)
	assert.Equal(t, 5, p.Stock())

	p.UpdateStock(5)
	assert.Equal(t, 5, p.Stock(), "re-aplicar el mismo evento deja el mismo estado")
}

func TestValidateUpdateStock_RechazaNegativos(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 0)

	assert.False(t, p.ValidateUpdateStock(0).HasErrors())

	errs := p.ValidateUpdateStock(-1)
	require.True(t, errs.HasErrors())
	assert.Equal(t, "Stock cannot be negative.", errs[0].Message)
}

func TestValidateRemove_SoloConStockCero(t *testing.T) {
	sinStock := entity.Restore(uuid.New(), "ABCD1234", 0)
	assert.False(t, sinStock.ValidateRemove().HasErrors())

	conStock := entity.Restore(uuid.New(), "ABCD1234", 1)
	errs := conStock.ValidateRemove()
	require.True(t, errs.HasErrors())
	assert.Equal(t, "Cannot remove a product when stock level is zero.", errs[0].Message)
}
