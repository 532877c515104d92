package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// emailQueue is the durable queue email jobs are published to.
const emailQueue = "auth.email"

// Publisher sends email jobs to RabbitMQ. Publishing is fire-and-forget
// from the request's point of view: any error is logged and returned so
// the caller can choose to ignore it, and the auth flow itself never
// fails because the broker is down.
type Publisher struct {
	url string
	log zerolog.Logger
}

func NewPublisher(url string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// PublishEmailJob declares the queue (idempotent) and publishes the job
// as a persistent JSON message. A connection is opened per publish; the
// volume here is a handful of mails per user lifetime, not a hot path.
func (p *Publisher) PublishEmailJob(ctx context.Context, job EmailJob) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		emailQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: marshal job failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", emailQueue, false, false, pub); err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
