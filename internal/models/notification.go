package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one in-app alert row. Created exclusively by the
// dispatcher; read state is mutated by the UI through the API.
type Notification struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	CertificateID uuid.UUID `json:"certificate_id"`
	Message       string    `json:"message"`
	Type          Threshold `json:"type"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserContact is the reachable-address view of a user, resolved per
// certificate at dispatch time.
type UserContact struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`            // E.164, empty when the user has no WhatsApp number
	TelegramChatID int64     `json:"telegram_chat_id,omitempty"` // 0 when unlinked
}
