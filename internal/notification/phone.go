package notification

import "strings"

// NormalizeWhatsAppNumber normalizes an Indian mobile number for WhatsApp
// deep links. Non-digits are stripped, a local leading zero is dropped, and
// the 91 country code is prepended to bare 10-digit numbers. The result may
// still be invalid if the input was not an Indian mobile number.
func NormalizeWhatsAppNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	if strings.HasPrefix(clean, "91") && len(clean) == 12 {
		return clean
	}

	clean = strings.TrimPrefix(clean, "0")

	if len(clean) == 10 {
		clean = "91" + clean
	}

	return clean
}

// NormalizeSmsNumber strips everything except digits and a leading plus,
// matching what the sms: URI scheme accepts.
func NormalizeSmsNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
