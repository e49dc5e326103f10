package entity

import "time"

// ReceiptStatus represents the lifecycle state of a receipt
type ReceiptStatus string

const (
	StatusDraft     ReceiptStatus = "draft"
	StatusCompleted ReceiptStatus = "completed"
	StatusScheduled ReceiptStatus = "scheduled"
)

var validStatuses = map[ReceiptStatus]bool{
	StatusDraft:     true,
	StatusCompleted: true,
	StatusScheduled: true,
}

// IsValid returns true if the status is a known receipt status
func (s ReceiptStatus) IsValid() bool {
	return validStatuses[s]
}

// String returns the string representation of the status
func (s ReceiptStatus) String() string {
	return string(s)
}

// OfferingItem represents a single seva or donation line on a receipt
type OfferingItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Receipt represents a donation or pooja receipt issued to a devotee
type Receipt struct {
	ID            int64          `json:"id"`
	ReceiptNumber string         `json:"receipt_number"`
	DevoteeName   string         `json:"devotee_name"`
	OfferingDate  string         `json:"offering_date"` // YYYY-MM-DD
	Items         []OfferingItem `json:"items"`
	Status        ReceiptStatus  `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	MobileNumber  string         `json:"mobile_number,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// TotalAmount returns the sum of all item amounts. The total is always
// recomputed from the items and never stored.
func (r *Receipt) TotalAmount() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.Amount
	}
	return total
}

// InMonth reports whether the offering date falls in the given year and month.
func (r *Receipt) InMonth(year int, month time.Month) bool {
	d, err := time.Parse("2006-01-02", r.OfferingDate)
	if err != nil {
		return false
	}
	return d.Year() == year && d.Month() == month
}
