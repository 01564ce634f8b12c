// Package storage provides the SQLite persistence layer for dex: accounts,
// the local session, contact messages, and the catalog cache.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/dex/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidContactForm = errors.New("invalid contact message")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateContactMessage checks the fields the table requires.
func validateContactMessage(msg *model.ContactMessage) error {
	if msg == nil {
		return fmt.Errorf("%w: contact message", ErrNilParameter)
	}
	if msg.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidContactForm)
	}
	if strings.TrimSpace(msg.Email) == "" {
		return fmt.Errorf("%w: missing email", ErrInvalidContactForm)
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("%w: missing subject", ErrInvalidContactForm)
	}
	if strings.TrimSpace(msg.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidContactForm)
	}
	return nil
}
