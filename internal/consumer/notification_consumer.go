package consumer

import (
	"encoding/json"

	"github.com/Kusalkumar06/eventia/internal/notification"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NotificationConsumer drains queued email and hands it to the mailer.
type NotificationConsumer struct {
	mailer Mailer
	log    *zerolog.Logger
}

func NewNotificationConsumer(mailer Mailer, log *zerolog.Logger) *NotificationConsumer {
	return &NotificationConsumer{mailer: mailer, log: log}
}

// Start processes msgs in a goroutine and returns a channel closed once the
// delivery channel is drained.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		nc.log.Info().Msg("notification consumer: channel closed, stopping")
	}()
	return done
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var email notification.EmailMessage
	if err := json.Unmarshal(msg.Body, &email); err != nil {
		nc.log.Error().Err(err).Msg("notification consumer: failed to unmarshal")
		_ = msg.Nack(false, false)
		return
	}

	if err := nc.mailer.Send(email.To, email.Subject, email.HTMLBody); err != nil {
		// One retry through the queue, then drop: email is best-effort.
		requeue := !msg.Redelivered
		nc.log.Warn().Err(err).Str("to", email.To).Bool("requeue", requeue).Msg("notification consumer: delivery failed")
		_ = msg.Nack(false, requeue)
		return
	}

	_ = msg.Ack(false)
}
