package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/dex/internal/model"
)

// SaveContactMessage stores a submitted contact message.
func (s *SQLiteStorage) SaveContactMessage(ctx context.Context, msg *model.ContactMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateContactMessage(msg); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, email, subject, description, terms_accepted, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.Email, msg.Subject, msg.Description, msg.TermsAccepted, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// GetContactMessages returns every stored message, newest first.
func (s *SQLiteStorage) GetContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, subject, description, terms_accepted, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.ContactMessage
	for rows.Next() {
		var msg model.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Email, &msg.Subject, &msg.Description, &msg.TermsAccepted, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}
	return messages, nil
}
