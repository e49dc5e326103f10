// Package notification prepares WhatsApp and SMS deep links for receipt
// confirmations. Dispatch means handing a prefilled URI to the presentation
// layer; delivery happens in the external messaging application.
package notification

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"go.uber.org/zap"
)

// ErrInvalidPhone is returned when a phone number cannot be normalized to a
// usable WhatsApp destination.
var ErrInvalidPhone = fmt.Errorf("invalid phone number")

// Dispatcher implements port.Notifier using wa.me and sms: deep links
type Dispatcher struct {
	logger *zap.Logger
}

// NewDispatcher creates a new deep-link notification dispatcher
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// SendChatConfirmation builds the WhatsApp deep link carrying the receipt
// confirmation message. Indian numbers with the 91 country code are 12
// digits; anything shorter after normalization is rejected.
func (d *Dispatcher) SendChatConfirmation(ctx context.Context, phone string, receipt *entity.Receipt) (string, error) {
	clean := NormalizeWhatsAppNumber(phone)
	if len(clean) < 12 {
		d.logger.Warn("Rejected WhatsApp destination",
			zap.String("phone", phone),
			zap.String("receipt_number", receipt.ReceiptNumber))
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	link := fmt.Sprintf("https://wa.me/%s?text=%s", clean, url.QueryEscape(WhatsAppBody(receipt)))

	d.logger.Info("WhatsApp confirmation prepared",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("phone", clean))

	return link, nil
}

// SendSms builds the sms: deep link with the prepared message body
func (d *Dispatcher) SendSms(ctx context.Context, phone string, message string) (string, error) {
	clean := NormalizeSmsNumber(phone)
	if clean == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	link := fmt.Sprintf("sms:%s?body=%s", clean, url.QueryEscape(message))

	d.logger.Info("SMS prepared", zap.String("phone", clean))

	return link, nil
}

// Verify interface compliance
var _ port.Notifier = (*Dispatcher)(nil)
