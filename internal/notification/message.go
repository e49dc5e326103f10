package notification

import (
	"fmt"
	"strings"

	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

// FormatINR formats an amount with the rupee sign and Indian digit grouping
// (1,00,000 rather than 100,000). Paise are shown only when present.
func FormatINR(amount float64) string {
	return "₹" + groupIndian(amount)
}

func groupIndian(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.TrimSuffix(s, ".00")

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	// Last three digits, then groups of two.
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(append(groups, tail), ",")
	}

	if neg {
		intPart = "-" + intPart
	}
	return intPart + fracPart
}

// WhatsAppBody renders the confirmation message for a receipt, sent when a
// devotee's offering has been recorded.
func WhatsAppBody(receipt *entity.Receipt) string {
	var items strings.Builder
	for _, item := range receipt.Items {
		fmt.Fprintf(&items, "- %s (%s)\n", item.Description, FormatINR(item.Amount))
	}

	return fmt.Sprintf(`🙏 Vanakam from Arulmigu Angala Parameswari Temple 🙏

Thank you, %s! We have received your offering.

🧾 Receipt No: %s
🌺 Seva(s):
%s---
💰 Total Amount: %s

May the blessings of the deity be with you and your family.`,
		receipt.DevoteeName,
		receipt.ReceiptNumber,
		items.String(),
		FormatINR(receipt.TotalAmount()),
	)
}

// SmsBody renders the plain SMS confirmation for a receipt. SMS has no
// markup, so the seva list is joined onto a single line.
func SmsBody(receipt *entity.Receipt) string {
	parts := make([]string, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		parts = append(parts, fmt.Sprintf("- %s (%s)", item.Description, FormatINR(item.Amount)))
	}

	return fmt.Sprintf("Vanakam from Arulmigu Angala Parameswari Temple. Thank you, %s! We have received your offering. Receipt No: %s. Seva(s): %s. Total: %s.",
		receipt.DevoteeName,
		receipt.ReceiptNumber,
		strings.Join(parts, ", "),
		FormatINR(receipt.TotalAmount()),
	)
}
