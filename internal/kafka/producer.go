package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"vessel-alert-service/internal/models"
)

// AlertEvent is published for every alert that reached its user, keyed by
// user id so one user's alerts stay ordered within a partition.
type AlertEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	CertificateID  string    `json:"certificate_id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	DispatchedAt   time.Time `json:"dispatched_at"`
}

type Producer struct {
	writer *kafkago.Writer
	logger *logrus.Logger
}

func NewProducer(broker, topic string, logger *logrus.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(broker),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Producer{writer: writer, logger: logger}
}

func (p *Producer) PublishAlert(ctx context.Context, n models.Notification) error {
	evt := AlertEvent{
		NotificationID: n.ID.String(),
		UserID:         n.UserID.String(),
		CertificateID:  n.CertificateID.String(),
		Type:           string(n.Type),
		Message:        n.Message,
		DispatchedAt:   time.Now(),
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode alert event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(evt.UserID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish alert event: %w", err)
	}
	p.logger.Debugf("Published alert event for notification %s", evt.NotificationID)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
