package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ReminderPayload carrega um agendamento de follow-up/demo/proposal/
// negotiation para o worker de lembretes.
type ReminderPayload struct {
	MessageID string `json:"message_id"`

	CallID      int64  `json:"call_id"`
	CallRef     string `json:"call_ref"`
	LeadName    string `json:"lead_name"`
	PhoneNumber string `json:"phone_number"`
	Stage       string `json:"stage"`
	ScheduledAt string `json:"scheduled_at"` // RFC3339

	ExecutiveID    int64  `json:"executive_id"`
	ExecutiveName  string `json:"executive_name"`
	ExecutiveEmail string `json:"executive_email"`

	Origin string `json:"origin"` // DISPOSITION_UPDATE | SWEEPER
}

type QueueProducerInterface interface {
	PublishReminder(ctx context.Context, payload ReminderPayload) error
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

func (p *RabbitMQProducer) PublishReminder(ctx context.Context, payload ReminderPayload) error {
	if payload.MessageID == "" {
		payload.MessageID = uuid.New().String()
	}

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
			MessageId:    payload.MessageID,
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
