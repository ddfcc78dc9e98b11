// Package events publishes transfer lifecycle events to RabbitMQ.
// Publishing is observational: the transfer has already committed by the
// time an event goes out, and a publish failure is logged, never surfaced.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/payflow-labs/transfer-service/internal/domain"
)

// TransferCompletedEvent is the wire payload for a completed transfer.
type TransferCompletedEvent struct {
	TransactionID string         `json:"transaction_id"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Entries       []EntryPayload `json:"entries"`
}

type EntryPayload struct {
	AccountNumber   string `json:"account_number"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	NewBalanceCents int64  `json:"new_balance_cents"`
}

const routingKeyTransferCompleted = "transfer.completed"

// Producer publishes events to a topic exchange.
type Producer struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   *slog.Logger
}

func NewProducer(url, exchange string, logger *slog.Logger) (*Producer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info("connected to RabbitMQ", "exchange", exchange)
	return &Producer{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

func (p *Producer) PublishTransferCompleted(ctx context.Context, log *domain.TransactionLog) error {
	body, err := json.Marshal(NewTransferCompletedEvent(log))
	if err != nil {
		return fmt.Errorf("failed to marshal transfer event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKeyTransferCompleted, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    log.ID,
		Timestamp:    log.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish transfer event: %w", err)
	}
	return nil
}

func (p *Producer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

func NewTransferCompletedEvent(log *domain.TransactionLog) TransferCompletedEvent {
	entries := make([]EntryPayload, 0, len(log.Entries))
	for _, e := range log.Entries {
		entries = append(entries, EntryPayload{
			AccountNumber:   e.AccountNumber,
			AmountCents:     e.Amount.Value,
			Currency:        e.Amount.Currency,
			NewBalanceCents: e.NewBalance.Value,
		})
	}
	return TransferCompletedEvent{
		TransactionID: log.ID,
		OccurredAt:    log.Timestamp,
		Entries:       entries,
	}
}

// NopPublisher stands in when event publishing is disabled or the broker
// is unreachable at startup.
type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishTransferCompleted(ctx context.Context, log *domain.TransactionLog) error {
	p.logger.Debug("event publishing disabled, transfer event skipped", "transaction_id", log.ID)
	return nil
}
