package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"vessel-alert-service/internal/models"
)

// GetUserContact resolves a user id to the addresses the dispatcher can
// reach them at. Phone and telegram chat id are optional columns.
func (d *DB) GetUserContact(ctx context.Context, userID uuid.UUID) (models.UserContact, error) {
	query := `
	SELECT id, email, COALESCE(phone, ''), COALESCE(telegram_chat_id, 0)
	FROM users
	WHERE id = $1`

	var contact models.UserContact
	err := d.Pool.QueryRow(ctx, query, userID).Scan(
		&contact.ID,
		&contact.Email,
		&contact.Phone,
		&contact.TelegramChatID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.UserContact{}, fmt.Errorf("no user found with id %s", userID)
		}
		return models.UserContact{}, fmt.Errorf("failed to get contact for user %s: %w", userID, err)
	}
	return contact, nil
}
