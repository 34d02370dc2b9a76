package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// InboundMessagePayload é uma mensagem de WhatsApp que acabou de chegar
// do lead e vai ser processada pelo worker SDR fora da request.
type InboundMessagePayload struct {
	EventID     string `json:"event_id"`
	OrgID       string `json:"org_id"`
	Phone       string `json:"phone"`
	Name        string `json:"name"`
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
}

type QueueProducerInterface interface {
	PublishInbound(ctx context.Context, payload InboundMessagePayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishInbound(ctx context.Context, payload InboundMessagePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
