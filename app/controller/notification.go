package controller

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/dto"
	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/middleware"
	"github.com/fedorhub/ms-go-notifications/app/provider"
)

// NotificationLister reads a user's recorded notifications, newest first.
type NotificationLister interface {
	ListByUser(ctx context.Context, userID int64) ([]entity.Notification, error)
}

type NotificationController struct {
	notifications NotificationLister
	provider      provider.EmailProvider
	log           *logrus.Logger
}

// NewNotificationController constructs the HTTP controller for the read API.
func NewNotificationController(notifications NotificationLister, p provider.EmailProvider, log *logrus.Logger) *NotificationController {
	return &NotificationController{notifications: notifications, provider: p, log: log}
}

// List returns the authenticated caller's notifications, newest first.
func (c *NotificationController) List(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	notifications, err := c.notifications.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		c.log.WithError(err).Error("failed to list notifications")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list notifications"})
	}

	return ctx.JSON(http.StatusOK, notifications)
}

// Alive is the liveness probe.
func (c *NotificationController) Alive(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"message": "Notifications service is alive"})
}

// SendEmail sends one email directly, bypassing the event pipeline. The
// route sits behind authentication; the unauthenticated variant this
// replaces was an open relay.
func (c *NotificationController) SendEmail(ctx echo.Context) error {
	req, err := dto.FromEchoContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	msg := provider.Message{
		To:      req.Recipient,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	}
	if err := c.provider.Send(ctx.Request().Context(), msg); err != nil {
		c.log.WithError(err).WithField("recipient", req.Recipient).Error("direct email send failed")
		return ctx.JSON(http.StatusBadGateway, map[string]string{"error": "failed to send email"})
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "email sent"})
}
