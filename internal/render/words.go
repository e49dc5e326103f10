package render

import "strings"

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells out a rupee amount in the Indian numbering system
// (crore, lakh, thousand). Paise are dropped. Zero reads as "Zero".
func AmountInWords(amount float64) string {
	n := int64(amount)
	if n == 0 {
		return "Zero"
	}

	var parts []string
	add := func(value int64, unit string) {
		if value == 0 {
			return
		}
		word := belowHundred(value)
		if unit != "" {
			word += " " + unit
		}
		parts = append(parts, word)
	}

	add(n/10000000%100, "Crore")
	add(n/100000%100, "Lakh")
	add(n/1000%100, "Thousand")
	add(n/100%10, "Hundred")

	if rest := n % 100; rest > 0 {
		if n > 100 {
			parts = append(parts, "and")
		}
		parts = append(parts, belowHundred(rest))
	}

	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	word := tens[n/10]
	if n%10 > 0 {
		word += " " + ones[n%10]
	}
	return word
}
