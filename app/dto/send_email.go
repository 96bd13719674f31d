package dto

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	ErrMissingFields    = errors.New("recipient and subject are required")
	ErrInvalidRecipient = errors.New("recipient must be a valid email address")
	ErrSubjectTooShort  = errors.New("subject must be at least 4 characters")
	ErrEmptyBody        = errors.New("either text or html body is required")
)

type SendEmailRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Text      string `json:"text"`
	HTML      string `json:"html"`
}

// FromEchoContext binds and normalizes a request from Echo.
func FromEchoContext(ctx echo.Context) (SendEmailRequest, error) {
	var req SendEmailRequest
	if err := ctx.Bind(&req); err != nil {
		return SendEmailRequest{}, err
	}
	req.normalize()
	return req, nil
}

// Validate checks required fields and format constraints.
func (r *SendEmailRequest) Validate() error {
	if r.Recipient == "" || r.Subject == "" {
		return ErrMissingFields
	}
	if _, err := mail.ParseAddress(r.Recipient); err != nil {
		return ErrInvalidRecipient
	}
	if len(r.Subject) < 4 {
		return ErrSubjectTooShort
	}
	if r.Text == "" && r.HTML == "" {
		return ErrEmptyBody
	}
	return nil
}

// normalize trims whitespace for all fields.
func (r *SendEmailRequest) normalize() {
	r.Recipient = strings.TrimSpace(r.Recipient)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Text = strings.TrimSpace(r.Text)
	r.HTML = strings.TrimSpace(r.HTML)
}
