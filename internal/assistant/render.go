package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"github.com/kovilapp/temple-admin/internal/notification"
)

func notFoundText(number string) string {
	return fmt.Sprintf("Sorry, I could not find receipt %s.", number)
}

func missingPhoneText(number string) string {
	return fmt.Sprintf("Sorry, receipt %s does not have a mobile number linked to it.", number)
}

func sendConfirmationText(number string) string {
	return fmt.Sprintf("Click the button below to send the WhatsApp confirmation for receipt %s.", number)
}

func sendSmsText(number, phone string) string {
	return fmt.Sprintf("The SMS for receipt %s is ready. Use the button below to send it to %s. Your messaging app will open with the message prefilled; review it and send it yourself.", number, phone)
}

// receiptSummary composes the human-readable detail view of one receipt
func receiptSummary(r *entity.Receipt) string {
	var items strings.Builder
	for _, item := range r.Items {
		fmt.Fprintf(&items, "• %s – %s\n", item.Description, notification.FormatINR(item.Amount))
	}

	return fmt.Sprintf(`🙏 Receipt Details – %s 🙏

🧾 Receipt No: %s
👤 Devotee: %s
🗓️ Offering Date: %s

🌺 Offerings:
%s
💰 Total Amount: %s

✅ Status: %s`,
		r.ReceiptNumber,
		r.ReceiptNumber,
		r.DevoteeName,
		displayDate(r.OfferingDate),
		strings.TrimRight(items.String(), "\n"),
		notification.FormatINR(r.TotalAmount()),
		r.Status,
	)
}

// monthListing lists the receipts of a month, each with its own total
func monthListing(month string, year int, found []*entity.Receipt) string {
	if len(found) == 0 {
		return fmt.Sprintf("No receipts were recorded in %s %d.", month, year)
	}

	var list strings.Builder
	for _, r := range found {
		fmt.Fprintf(&list, "• %s (%s) - %s\n", r.ReceiptNumber, r.DevoteeName, notification.FormatINR(r.TotalAmount()))
	}

	return fmt.Sprintf("Found %d receipt(s) for %s %d:\n\n%s\nAsk for a receipt by its number to see full details.",
		len(found), month, year, strings.TrimRight(list.String(), "\n")+"\n")
}

// displayDate formats YYYY-MM-DD as 07-Nov-2025 for chat output
func displayDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02-Jan-2006")
}

// ParseMonth resolves an English month name, full or abbreviated, in any case
func ParseMonth(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return m, true
		}
	}
	return 0, false
}
