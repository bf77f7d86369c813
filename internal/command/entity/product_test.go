package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/command/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validación del código
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateCode_Reglas(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		wantMsg string // vacío = válido
	}{
		{name: "código válido de 8 caracteres", code: "ABCD1234", wantMsg: ""},
		{name: "código vacío es requerido", code: "", wantMsg: "Code field is required."},
		{name: "código de 7 caracteres", code: "ABCD123", wantMsg: "Code must be exactly 8 characters."},
		{name: "código de 9 caracteres", code: "ABCD12345", wantMsg: "Code must be exactly 8 characters."},
		// La longitud se cuenta en runas, no en bytes: 8 letras acentuadas
		// ocupan 16 bytes pero son un código válido.
		{name: "8 runas multibyte son válidas", code: "áéíóúñüö", wantMsg: ""},
		{name: "8 bytes pero 4 runas no alcanza", code: "ññññ", wantMsg: "Code must be exactly 8 characters."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := entity.ValidateCode(tc.code)
			if tc.wantMsg == "" {
				assert.False(t, errs.HasErrors(), "el código %q debe ser válido", tc.code)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, "Code", errs[0].Field)
			assert.Equal(t, tc.wantMsg, errs[0].Message)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción
// ──────────────────────────────────────────────────────────────────────────────

func TestNewProduct_GeneraIDSiEsCero(t *testing.T) {
	p, errs := entity.NewProduct(uuid.Nil, "ABCD1234")
	require.False(t, errs.HasErrors())
	require.NotNil(t, p)

	assert.NotEqual(t, uuid.Nil, p.ID(), "debe generarse un ID nuevo")
	assert.Equal(t, "ABCD1234", p.Code())
	assert.Equal(t, 0, p.Stock(), "el stock inicial siempre es cero")
}

func TestNewProduct_ConservaIDDado(t *testing.T) {
	id := uuid.New()
	p, errs := entity.NewProduct(id, "ABCD1234")
	require.False(t, errs.HasErrors())
	assert.Equal(t, id, p.ID())
}

func TestNewProduct_CodigoInvalidoNoConstruye(t *testing.T) {
	p, errs := entity.NewProduct(uuid.New(), "X")
	assert.Nil(t, p, "un producto inválido nunca se materializa")
	require.True(t, errs.HasErrors())
	assert.Equal(t, "Code", errs[0].Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_Incrementa(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 0)
	p.AddStock()
	p.AddStock()
	assert.Equal(t, 2, p.Stock())
}

func TestRemoveStock_Decrementa(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 2)
	p.RemoveStock()
	assert.Equal(t, 1, p.Stock())
}

// RemoveStock con stock en cero es una violación de contrato del llamador:
// quien quiera un rechazo recuperable valida antes con ValidateRemoveStock.
func TestRemoveStock_PanicsConStockCero(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 0)
	require.Panics(t, func() { p.RemoveStock() })
	assert.Equal(t, 0, p.Stock(), "el stock no debe mutar")
}

func TestValidateRemoveStock(t *testing.T) {
	conStock := entity.Restore(uuid.New(), "ABCD1234", 1)
	assert.False(t, conStock.ValidateRemoveStock().HasErrors())

	sinStock := entity.Restore(uuid.New(), "ABCD1234", 0)
	errs := sinStock.ValidateRemoveStock()
	require.True(t, errs.HasErrors())
	assert.Equal(t, "Stock", errs[0].Field)
	assert.Equal(t, "Cannot remove stock when stock level is zero.", errs[0].Message)
}

func TestValidateRemove_SoloConStockCero(t *testing.T) {
	sinStock := entity.Restore(uuid.New(), "ABCD1234", 0)
	assert.False(t, sinStock.ValidateRemove().HasErrors(), "con stock cero la eliminación es legal")

	conStock := entity.Restore(uuid.New(), "ABCD1234", 3)
	errs := conStock.ValidateRemove()
	require.True(t, errs.HasErrors())
	assert.Equal(t, "Cannot remove a product when stock level is zero.", errs[0].Message)
}

func TestValidateUpdateStock(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 1)
	assert.False(t, p.ValidateUpdateStock(0).HasErrors())
	assert.False(t, p.ValidateUpdateStock(10).HasErrors())

	errs := p.ValidateUpdateStock(-1)
	require.True(t, errs.HasErrors())
	assert.Equal(t, "Stock cannot be negative.", errs[0].Message)
}

func TestUpdateStock_AsignaValorAbsoluto(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 7)
	p.UpdateStock(3)
	assert.Equal(t, 3, p.Stock())
}
