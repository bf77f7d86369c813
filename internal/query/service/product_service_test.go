package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/event"
	"github.com/jhoicas/almacen-api/internal/query/entity"
	"github.com/jhoicas/almacen-api/internal/query/service"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble de test: almacén de la réplica en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products map[uuid.UUID]*entity.Product
	inserts  []*entity.Product
	deletes  []*entity.Product
	commits  int
}

func newFakeStore(seed ...*entity.Product) *fakeStore {
	s := &fakeStore{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range seed {
		s.products[p.ID()] = p
	}
	return s
}

func (s *fakeStore) Add(p *entity.Product)    { s.inserts = append(s.inserts, p) }
func (s *fakeStore) Remove(p *entity.Product) { s.deletes = append(s.deletes, p) }

func (s *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.products[id], nil
}

func (s *fakeStore) GetByIDDetached(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p := s.products[id]
	if p == nil {
		return nil, nil
	}
	return entity.Restore(p.ID(), p.Code(), p.Stock()), nil
}

func (s *fakeStore) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range s.products {
		if p.Code() == code {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeStore) ListDetached(ctx context.Context) ([]*entity.Product, error) {
	return s.List(ctx)
}

func (s *fakeStore) Commit(context.Context) error {
	for _, p := range s.inserts {
		s.products[p.ID()] = p
	}
	for _, p := range s.deletes {
		delete(s.products, p.ID())
	}
	s.inserts = nil
	s.deletes = nil
	s.commits++
	return nil
}

func newService(store *fakeStore) *service.ProductService {
	return service.NewProductService(store, service.NewProductValidator(store), store)
}

// ──────────────────────────────────────────────────────────────────────────────
// TryInsertFromEvent
// ──────────────────────────────────────────────────────────────────────────────

func TestTryInsertFromEvent_Exito(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	evt := event.ProductCreated{ID: uuid.New(), Code: "ABCD1234"}
	p, verrs, err := svc.TryInsertFromEvent(context.Background(), evt)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	require.NotNil(t, p)

	assert.Equal(t, evt.ID, p.ID())
	assert.Equal(t, 0, p.Stock(), "el stock inicial de la réplica es cero")
	assert.Equal(t, 1, store.commits)
	assert.Len(t, store.products, 1)
}

func TestTryInsertFromEvent_CodigoInvalidoSeRechaza(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	evt := event.ProductCreated{ID: uuid.New(), Code: "ABC"}
	p, verrs, err := svc.TryInsertFromEvent(context.Background(), evt)
	require.NoError(t, err)
	require.True(t, verrs.HasErrors())
	assert.Nil(t, p)
	assert.Equal(t, 0, store.commits)
	assert.Empty(t, store.products)
}

// Una re-entrega de ProductCreated cae en el rechazo de unicidad: un
// rechazo observable en lugar de una fila duplicada.
func TestTryInsertFromEvent_ReentregaSeRechazaPorUnicidad(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	ctx := context.Background()

	evt := event.ProductCreated{ID: uuid.New(), Code: "ABCD1234"}
	_, verrs, err := svc.TryInsertFromEvent(ctx, evt)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	_, verrs, err = svc.TryInsertFromEvent(ctx, evt)
	require.NoError(t, err)
	require.True(t, verrs.HasErrors())
	assert.Equal(t, "A product with code 'ABCD1234' already exists.", verrs[0].Message)

	assert.Len(t, store.products, 1, "la réplica conserva una sola fila")
	assert.Equal(t, 1, store.commits)
}

// ──────────────────────────────────────────────────────────────────────────────
// TryUpdateFromEvent
// ──────────────────────────────────────────────────────────────────────────────

func TestTryUpdateFromEvent_AplicaValorAbsoluto(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 2)
	store := newFakeStore(p)
	svc := newService(store)

	got, verrs, err := svc.TryUpdateFromEvent(context.Background(), event.ProductUpdated{ID: p.ID(), Stock: 5})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.Equal(t, 5, got.Stock())
}

// Re-aplicar el mismo ProductUpdated deja la réplica exactamente igual.
func TestTryUpdateFromEvent_Idempotente(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 2)
	store := newFakeStore(p)
	svc := newService(store)
	ctx := context.Background()

	evt := event.ProductUpdated{ID: p.ID(), Stock: 5}
	for i := 0; i < 2; i++ {
		got, verrs, err := svc.TryUpdateFromEvent(ctx, evt)
		require.NoError(t, err)
		require.False(t, verrs.HasErrors())
		assert.Equal(t, 5, got.Stock())
	}
	assert.Equal(t, 5, store.products[p.ID()].Stock())
}

func TestTryUpdateFromEvent_NoEncontrado(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	got, verrs, err := svc.TryUpdateFromEvent(context.Background(), event.ProductUpdated{ID: uuid.New(), Stock: 5})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, verrs.HasErrors())
	assert.Equal(t, 0, store.commits)
}

func TestTryUpdateFromEvent_StockNegativoSeRechaza(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 2)
	store := newFakeStore(p)
	svc := newService(store)

	got, verrs, err := svc.TryUpdateFromEvent(context.Background(), event.ProductUpdated{ID: p.ID(), Stock: -1})
	require.NoError(t, err)
	require.True(t, verrs.HasErrors())
	require.NotNil(t, got)
	assert.Equal(t, 2, store.products[p.ID()].Stock(), "el valor previo se conserva")
}

// ──────────────────────────────────────────────────────────────────────────────
// TryDeleteFromEvent
// ──────────────────────────────────────────────────────────────────────────────

func TestTryDeleteFromEvent_Exito(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 0)
	store := newFakeStore(p)
	svc := newService(store)

	got, verrs, err := svc.TryDeleteFromEvent(context.Background(), event.ProductDeleted{ID: p.ID()})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	require.NotNil(t, got)
	assert.Empty(t, store.products)
}

func TestTryDeleteFromEvent_ConStockSeRechaza(t *testing.T) {
	p := entity.Restore(uuid.New(), "ABCD1234", 3)
	store := newFakeStore(p)
	svc := newService(store)

	got, verrs, err := svc.TryDeleteFromEvent(context.Background(), event.ProductDeleted{ID: p.ID()})
	require.NoError(t, err)
	require.True(t, verrs.HasErrors())
	require.NotNil(t, got)
	assert.Len(t, store.products, 1)
}

func TestTryDeleteFromEvent_NoEncontrado(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	got, verrs, err := svc.TryDeleteFromEvent(context.Background(), event.ProductDeleted{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, verrs.HasErrors())
}
