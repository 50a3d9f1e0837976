// Package queue contains the background dispatcher that listens to the
// sms.outbound queue and delivers messages through the SMS gateway client.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/sms"
)

const outboundQueueName = "sms.outbound"

// StartSMSDispatcher connects to RabbitMQ, declares the sms.outbound queue
// (durable), and starts consuming messages. Each message is delivered via
// the given gateway client, which handles the development-mode fallback
// itself. The function runs a reconnect loop with exponential backoff and
// keeps running for the lifetime of the process; delivery errors are logged
// and the offending message is rejected without requeue so a broken payload
// cannot spin the loop.
func StartSMSDispatcher(url string, client *sms.Client) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("sms-dispatcher: failed to dial broker")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, client); err != nil {
			log.Warn().Err(err).Msg("sms-dispatcher: consume loop ended; reconnecting")
			time.Sleep(2 * time.Second)
		}
		_ = conn.Close()
	}
}

func consumeLoop(conn *amqp.Connection, client *sms.Client) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Warn().Err(err).Msg("sms-dispatcher: set QoS failed")
	}

	if _, err := ch.QueueDeclare(outboundQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(outboundQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, client); err != nil {
			log.Error().Err(err).Msg("sms-dispatcher: handle message failed")
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, client *sms.Client) error {
	var ev OutboundSMSEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := client.Send(ctx, ev.PhoneNumber, ev.Message); err != nil {
		return fmt.Errorf("gateway send: %w", err)
	}
	log.Info().
		Str("to", ev.PhoneNumber).
		Str("purpose", ev.Purpose).
		Msg("sms-dispatcher: message delivered")
	return nil
}
