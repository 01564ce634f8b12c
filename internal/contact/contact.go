// Package contact accepts messages from the contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/service"
	"github.com/google/uuid"
)

// ErrTermsNotAccepted is returned when the terms checkbox was left unchecked.
var ErrTermsNotAccepted = errors.New("you must accept the terms and conditions")

// Confirmation is shown after a successful submission.
const Confirmation = "Form sent! Thanks for your message."

// Service validates and stores contact messages.
type Service struct {
	store service.ContactStore
	now   func() time.Time
}

// NewService creates a Service backed by store.
func NewService(store service.ContactStore) *Service {
	return &Service{store: store, now: time.Now}
}

// Submit validates msg, assigns its ID and timestamp, and stores it.
func (s *Service) Submit(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Description = strings.TrimSpace(msg.Description)

	if err := common.Validate(msg); err != nil {
		return nil, err
	}
	if !msg.TermsAccepted {
		return nil, ErrTermsNotAccepted
	}

	msg.ID = uuid.New().String()
	msg.CreatedAt = s.now().UTC()

	if err := s.store.SaveContactMessage(ctx, &msg); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	slog.Info("Contact message received", "id", msg.ID, "subject", msg.Subject)
	return &msg, nil
}

// List returns stored messages, newest first.
func (s *Service) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.store.GetContactMessages(ctx)
}
