package entity

import "time"

// Common staff roles. The role field is an open enumeration: forms and the
// assistant may record other values.
const (
	RoleHeadPriest      = "Head Priest"
	RoleAssistantPriest = "Assistant Priest"
	RoleSevadar         = "Sevadar"
	RoleVolunteer       = "Volunteer"
	RoleStaff           = "Temple Staff"
)

// StaffRecord represents a priest, sevadar or other temple staff member
type StaffRecord struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Specialty     string    `json:"specialty,omitempty"`
	ContactPerson string    `json:"contact_person"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	ContactPhone  string    `json:"contact_phone"`
	AddressLine1  string    `json:"address_line1,omitempty"`
	AddressLine2  string    `json:"address_line2,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Pincode       string    `json:"pincode,omitempty"`
	JoinedDate    string    `json:"joined_date"` // YYYY-MM-DD, set once at creation
	CreatedAt     time.Time `json:"created_at"`
}
