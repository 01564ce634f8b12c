package model

import "time"

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	Email         string    `json:"email" validate:"required,email"`
	Subject       string    `json:"subject" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	TermsAccepted bool      `json:"terms"`
}
