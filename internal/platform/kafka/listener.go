package kafka

import (
	"context"
	"errors"
	"io"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Handler procesa el payload de un mensaje.
type Handler func(ctx context.Context, payload []byte) error

// Fetcher abstrae el lector de kafka-go (fetch + commit explícito) para la
// entrega al-menos-una-vez y para poder sustituirlo en tests.
type Fetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// permanent marca un fallo que la re-entrega no puede resolver.
type permanent interface {
	Permanent() bool
}

// Listener consume un topic y despacha cada mensaje a su handler.
//
// Política de confirmación: el offset se confirma cuando el handler tiene
// éxito o devuelve un fallo permanente (evento rechazado o malformado; se
// registra con detalle y se descarta). Un fallo transitorio deja el offset
// sin confirmar y el broker re-entrega. Los handlers no reintentan.
type Listener struct {
	topic   string
	fetcher Fetcher
	handle  Handler
	tracer  trace.Tracer
	log     *logger.Logger
}

// NewListener construye un listener de grupo sobre el topic dado.
func NewListener(cfg config.KafkaConfig, topic string, handle Handler, log *logger.Logger) *Listener {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   topic,
	})
	return NewListenerWithFetcher(r, topic, handle, log)
}

// NewListenerWithFetcher permite inyectar el fetcher (tests).
func NewListenerWithFetcher(f Fetcher, topic string, handle Handler, log *logger.Logger) *Listener {
	return &Listener{
		topic:   topic,
		fetcher: f,
		handle:  handle,
		tracer:  otel.Tracer("almacen-api/kafka"),
		log:     log,
	}
}

// Run consume hasta que el contexto se cancele.
func (l *Listener) Run(ctx context.Context) error {
	l.log.Info().Str("topic", l.topic).Msg("listener iniciado")
	for {
		msg, err := l.fetcher.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				l.log.Info().Str("topic", l.topic).Msg("listener detenido")
				return nil
			}
			l.log.Error().Err(err).Str("topic", l.topic).Msg("leer mensaje")
			continue
		}
		l.process(ctx, msg)
	}
}

// Close cierra el lector subyacente si lo permite.
func (l *Listener) Close() error {
	if c, ok := l.fetcher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (l *Listener) process(ctx context.Context, msg kafkago.Message) {
	msgCtx := extractTraceContext(ctx, msg.Headers)
	msgCtx, span := l.tracer.Start(msgCtx, "consume "+l.topic)
	defer span.End()

	err := l.handle(msgCtx, msg.Value)
	if err == nil {
		span.SetStatus(codes.Ok, "")
		l.commit(ctx, msg)
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var perm permanent
	if errors.As(err, &perm) && perm.Permanent() {
		// Fallo permanente: dejar rastro completo y descartar el mensaje.
		l.log.Error().
			Err(err).
			Str("topic", l.topic).
			Int64("offset", msg.Offset).
			Msg("evento rechazado")
		l.commit(ctx, msg)
		return
	}

	// Fallo transitorio: sin commit, el broker re-entrega.
	l.log.Warn().
		Err(err).
		Str("topic", l.topic).
		Int64("offset", msg.Offset).
		Msg("evento no aplicado, se reintentará")
}

func (l *Listener) commit(ctx context.Context, msg kafkago.Message) {
	if err := l.fetcher.CommitMessages(ctx, msg); err != nil {
		l.log.Error().Err(err).Str("topic", l.topic).Msg("confirmar offset")
	}
}

// extractTraceContext recupera el contexto de traza OTel inyectado por el
// publicador en las cabeceras del mensaje.
func extractTraceContext(ctx context.Context, headers []kafkago.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		carrier[h.Key] = string(h.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
