package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"vessel-alert-service/internal/models"
	"vessel-alert-service/internal/utils"
)

// Store is the slice of the certificate store the dispatcher touches.
type Store interface {
	CreateNotification(ctx context.Context, n models.Notification) error
	MarkAlertSent(ctx context.Context, certID uuid.UUID, threshold models.Threshold) error
	GetUserContact(ctx context.Context, userID uuid.UUID) (models.UserContact, error)
}

// EmailSender delivers one alert email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// TextSender delivers one free-text message to a phone number (WhatsApp
// style) and returns the provider message id.
type TextSender interface {
	Send(ctx context.Context, to, text string) (string, error)
}

// ChatSender delivers one message to a linked chat id (telegram style).
type ChatSender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Publisher receives an event for every alert that reached its user.
type Publisher interface {
	PublishAlert(ctx context.Context, n models.Notification) error
}

// NotificationPusher pushes an in-app notification to live connections.
type NotificationPusher interface {
	Push(userID uuid.UUID, n models.Notification)
}

// Result describes what one dispatch achieved.
type Result struct {
	NotificationCreated bool
	ExternalSent        bool
	FlagSet             bool
	StoreErrors         int
}

// Dispatcher performs the side effects for one triggered alert: the in-app
// notification row, the external channel sends, and the idempotency flag.
type Dispatcher struct {
	store       Store
	email       EmailSender
	whatsapp    TextSender
	telegram    ChatSender         // optional
	pusher      NotificationPusher // optional
	publisher   Publisher          // optional
	logger      *logrus.Logger
	maxAttempts int
	baseDelay   time.Duration
	now         func() time.Time
}

func NewDispatcher(store Store, email EmailSender, whatsapp TextSender, logger *logrus.Logger, maxAttempts int, baseDelay time.Duration) *Dispatcher {
	return &Dispatcher{
		store:       store,
		email:       email,
		whatsapp:    whatsapp,
		logger:      logger,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		now:         time.Now,
	}
}

// WithTelegram enables the optional telegram channel.
func (d *Dispatcher) WithTelegram(tg ChatSender) *Dispatcher {
	d.telegram = tg
	return d
}

// WithPusher enables live in-app push on notification insert.
func (d *Dispatcher) WithPusher(p NotificationPusher) *Dispatcher {
	d.pusher = p
	return d
}

// WithPublisher enables alert-event publishing for dispatched alerts.
func (d *Dispatcher) WithPublisher(p Publisher) *Dispatcher {
	d.publisher = p
	return d
}

// Dispatch handles one triggered (certificate, threshold) pair.
//
// The in-app notification row is written unconditionally; external delivery
// is best-effort per channel with retry-and-backoff; the threshold's flag is
// set only when at least one external channel delivered, so a failed send is
// retried on the next run (at-least-once). Errors never propagate to the
// caller: one certificate's failure must not abort the run.
func (d *Dispatcher) Dispatch(ctx context.Context, cert models.Certificate, trig Trigger) Result {
	content := BuildContent(cert, trig)
	var res Result

	notif := models.Notification{
		ID:            uuid.New(),
		UserID:        cert.OwnerID,
		CertificateID: cert.ID,
		Message:       content.Message,
		Type:          trig.Threshold,
		IsRead:        false,
		CreatedAt:     d.now(),
	}
	// In-app delivery is not gated on external channel success.
	if err := d.store.CreateNotification(ctx, notif); err != nil {
		d.logger.Errorf("Failed to insert notification for certificate %s: %v", cert.ID, err)
		res.StoreErrors++
	} else {
		res.NotificationCreated = true
		if d.pusher != nil {
			d.pusher.Push(cert.OwnerID, notif)
		}
	}

	contact, err := d.store.GetUserContact(ctx, cert.OwnerID)
	if err != nil {
		d.logger.Errorf("Failed to resolve owner %s for certificate %s, skipping external send: %v",
			cert.OwnerID, cert.ID, err)
		return res
	}

	sent := false
	if contact.Email != "" {
		err := utils.Retry(ctx, d.logger, d.maxAttempts, d.baseDelay, func() error {
			return d.email.Send(ctx, contact.Email, content.Subject, content.HTML)
		})
		if err != nil {
			d.logger.Errorf("Email send failed for certificate %s to %s: %v", cert.ID, contact.Email, err)
		} else {
			sent = true
			d.logger.Infof("Email sent for certificate %s to %s (%s)", cert.ID, contact.Email, trig.Threshold)
		}
	}

	if contact.Phone != "" {
		var msgID string
		err := utils.Retry(ctx, d.logger, d.maxAttempts, d.baseDelay, func() error {
			id, err := d.whatsapp.Send(ctx, contact.Phone, content.Message)
			msgID = id
			return err
		})
		if err != nil {
			d.logger.Errorf("WhatsApp send failed for certificate %s to %s: %v", cert.ID, contact.Phone, err)
		} else {
			sent = true
			d.logger.Infof("WhatsApp message %s sent for certificate %s (%s)", msgID, cert.ID, trig.Threshold)
		}
	}

	if d.telegram != nil && contact.TelegramChatID != 0 {
		err := utils.Retry(ctx, d.logger, d.maxAttempts, d.baseDelay, func() error {
			return d.telegram.Send(ctx, contact.TelegramChatID, content.Message)
		})
		if err != nil {
			d.logger.Errorf("Telegram send failed for certificate %s to chat_id %d: %v", cert.ID, contact.TelegramChatID, err)
		} else {
			sent = true
		}
	}

	if !sent {
		return res
	}
	res.ExternalSent = true

	// Flag left unset on write failure means this threshold is re-sent next
	// run (at-least-once).
	if err := d.store.MarkAlertSent(ctx, cert.ID, trig.Threshold); err != nil {
		d.logger.Errorf("Failed to mark %s sent for certificate %s: %v", trig.Threshold, cert.ID, err)
		res.StoreErrors++
	} else {
		res.FlagSet = true
	}

	if d.publisher != nil {
		if err := d.publisher.PublishAlert(ctx, notif); err != nil {
			d.logger.Warnf("Failed to publish alert event for certificate %s: %v", cert.ID, err)
		}
	}

	return res
}
