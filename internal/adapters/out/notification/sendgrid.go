package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/pkg/errs"
)

// SendGridNotifier emails order status updates to the deployment's
// configured recipient. A per-customer channel (SMS, push) is a later
// concern; this keeps operators in the loop meanwhile.
type SendGridNotifier struct {
	client    *sendgrid.Client
	from      *mail.Email
	recipient *mail.Email
	logger    *zap.Logger
}

var _ ports.Notifier = (*SendGridNotifier)(nil)

// NewSendGridNotifier creates a notifier that sends from the given
// address to the given recipient.
func NewSendGridNotifier(apiKey, fromEmail, recipientEmail string, logger *zap.Logger) (*SendGridNotifier, error) {
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if fromEmail == "" {
		return nil, errs.NewValueIsRequiredError("fromEmail")
	}
	if recipientEmail == "" {
		return nil, errs.NewValueIsRequiredError("recipientEmail")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		from:      mail.NewEmail("Order Updates", fromEmail),
		recipient: mail.NewEmail("", recipientEmail),
		logger:    logger,
	}, nil
}

// NotifyOrderStatus sends a status update email for the order.
func (n *SendGridNotifier) NotifyOrderStatus(ctx context.Context, orderID, status string) error {
	subject := fmt.Sprintf("Order %s: %s", orderID, status)
	body := fmt.Sprintf("Order %s is now %s.", orderID, status)
	message := mail.NewSingleEmail(n.from, subject, n.recipient, body, body)

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		n.logger.Error("failed to send order status email",
			zap.String("order_id", orderID),
			zap.String("status", status),
			zap.Error(err))
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d", response.StatusCode)
		n.logger.Error("order status email rejected",
			zap.String("order_id", orderID),
			zap.Int("status_code", response.StatusCode))
		return err
	}

	n.logger.Info("order status email sent",
		zap.String("order_id", orderID),
		zap.String("status", status))

	return nil
}
