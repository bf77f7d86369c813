// Package kafka adapta el bus de eventos sobre segmentio/kafka-go: un
// Publisher para el lado comando y un Listener por topic para la réplica.
// La entrega es al-menos-una-vez; el orden entre tipos de evento no está
// garantizado.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/almacen-api/internal/event"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// Writer abstrae el productor de kafka-go para poder sustituirlo en tests.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publisher publica eventos de dominio, un topic por tipo de evento. La
// clave del mensaje es el id del producto: afinidad de partición, no una
// garantía de orden entre tipos.
type Publisher struct {
	writer Writer
	topics map[string]string
}

// NewPublisher construye el publicador sobre un writer real de kafka-go.
func NewPublisher(cfg config.KafkaConfig) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: cfg.BatchTimeout,
	}
	return NewPublisherWithWriter(w, EventTopics(cfg))
}

// NewPublisherWithWriter permite inyectar el writer (tests).
func NewPublisherWithWriter(w Writer, topics map[string]string) *Publisher {
	return &Publisher{writer: w, topics: topics}
}

// EventTopics mapea cada tipo de evento a su topic configurado.
func EventTopics(cfg config.KafkaConfig) map[string]string {
	return map[string]string{
		event.ProductCreated{}.EventName(): cfg.CreatedTopic,
		event.ProductUpdated{}.EventName(): cfg.UpdatedTopic,
		event.ProductDeleted{}.EventName(): cfg.DeletedTopic,
	}
}

// Publish serializa el evento como JSON y lo escribe en su topic,
// propagando el contexto de traza en las cabeceras del mensaje.
func (p *Publisher) Publish(ctx context.Context, evt event.Event) error {
	topic, ok := p.topics[evt.EventName()]
	if !ok {
		return fmt.Errorf("sin topic para el evento %s", evt.EventName())
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", evt.EventName(), err)
	}

	msg := kafkago.Message{
		Topic:   topic,
		Key:     []byte(evt.AggregateID().String()),
		Value:   payload,
		Headers: injectTraceContext(ctx),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar %s: %w", evt.EventName(), err)
	}
	return nil
}

// Close cierra el writer subyacente si lo permite.
func (p *Publisher) Close() error {
	if c, ok := p.writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// injectTraceContext vuelca el contexto de traza OTel en cabeceras Kafka
// para enlazar los spans del comando con los de la réplica.
func injectTraceContext(ctx context.Context) []kafkago.Header {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := make([]kafkago.Header, 0, len(carrier))
	for k, v := range carrier {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return headers
}
