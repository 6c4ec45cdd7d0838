package queue

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ReminderMailer é o contrato do envio de lembrete (SMTP hoje; o canal de
// whatsapp entraria aqui).
type ReminderMailer interface {
	SendFollowUpReminder(to, executiveName, leadName string, stage string, when time.Time) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  ReminderMailer
}

func NewWorker(ch *amqp.Channel, mailer ReminderMailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		logrus.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ReminderPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				logrus.Warnf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			logrus.Infof("📥 [WORKER] Lembrete %s para %s (call %d, stage %s)",
				payload.MessageID, payload.ExecutiveEmail, payload.CallID, payload.Stage)

			if err := w.processMessage(payload); err != nil {
				logrus.Warnf("❌ [WORKER] Falha no envio: %s", err)
				d.Nack(false, false) // vai para a DLQ
			} else {
				d.Ack(false)
			}
		}
	}()

	logrus.Infof(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload ReminderPayload) error {
	when, err := time.Parse(time.RFC3339, payload.ScheduledAt)
	if err != nil {
		when = time.Now()
	}

	return w.Mailer.SendFollowUpReminder(
		payload.ExecutiveEmail,
		payload.ExecutiveName,
		payload.LeadName,
		payload.Stage,
		when,
	)
}
