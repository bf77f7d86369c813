package kafka_test

import (
	"context"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/platform/kafka"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// fakeFetcher entrega una cola fija de mensajes y después corta con
// context.Canceled para que Run termine. Registra los offsets confirmados.
type fakeFetcher struct {
	queue     []kafkago.Message
	committed []int64
}

func (f *fakeFetcher) FetchMessage(context.Context) (kafkago.Message, error) {
	if len(f.queue) == 0 {
		return kafkago.Message{}, context.Canceled
	}
	msg := f.queue[0]
	f.queue = f.queue[1:]
	return msg, nil
}

func (f *fakeFetcher) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

// permanentErr imita los fallos no re-entregables de los consumidores.
type permanentErr struct{ msg string }

func (e *permanentErr) Error() string   { return e.msg }
func (e *permanentErr) Permanent() bool { return true }

func runListener(t *testing.T, f *fakeFetcher, handle kafka.Handler) {
	t.Helper()
	l := kafka.NewListenerWithFetcher(f, "product-created-events", handle, logger.NewNop())
	require.NoError(t, l.Run(context.Background()))
}

// Handler exitoso: el offset se confirma.
func TestListener_ExitoConfirmaOffset(t *testing.T) {
	f := &fakeFetcher{queue: []kafkago.Message{{Offset: 7, Value: []byte(`{}`)}}}

	var handled [][]byte
	runListener(t, f, func(_ context.Context, payload []byte) error {
		handled = append(handled, payload)
		return nil
	})

	require.Len(t, handled, 1)
	assert.Equal(t, []int64{7}, f.committed)
}

// Fallo permanente: se descarta el mensaje confirmando el offset, el
// broker no debe re-entregar algo que nunca va a volverse válido.
func TestListener_FalloPermanenteDescartaYConfirma(t *testing.T) {
	f := &fakeFetcher{queue: []kafkago.Message{{Offset: 3}}}

	runListener(t, f, func(context.Context, []byte) error {
		return &permanentErr{msg: "evento rechazado"}
	})

	assert.Equal(t, []int64{3}, f.committed)
}

// Fallo transitorio: el offset queda sin confirmar y el broker re-entrega.
func TestListener_FalloTransitorioNoConfirma(t *testing.T) {
	f := &fakeFetcher{queue: []kafkago.Message{{Offset: 5}}}

	runListener(t, f, func(context.Context, []byte) error {
		return errors.New("base de datos caída")
	})

	assert.Empty(t, f.committed)
}

// Mezcla: solo los mensajes procesables avanzan el offset.
func TestListener_MezclaDeFallos(t *testing.T) {
	f := &fakeFetcher{queue: []kafkago.Message{
		{Offset: 1, Value: []byte(`a`)},
		{Offset: 2, Value: []byte(`b`)},
		{Offset: 3, Value: []byte(`c`)},
	}}

	runListener(t, f, func(_ context.Context, payload []byte) error {
		switch string(payload) {
		case "a":
			return nil
		case "b":
			return errors.New("transitorio")
		default:
			return &permanentErr{msg: "permanente"}
		}
	})

	assert.Equal(t, []int64{1, 3}, f.committed)
}
