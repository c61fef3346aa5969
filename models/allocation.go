package models

import "time"

const (
	AllocationPaymentPending = "Pending"
	AllocationPaymentPaid    = "Paid"
	AllocationPaymentOverdue = "Overdue"
)

// RoomAllocation binds one student to one room for a semester. A student has
// at most one allocation at a time (unique index on the reg number); it is
// created on selection, mutated on transfer or payment confirmation, and
// deleted on revocation.
type RoomAllocation struct {
	ID               string    `gorm:"primaryKey;size:40" json:"id"`
	StudentRegNumber string    `gorm:"uniqueIndex;size:30" json:"studentRegNumber"`
	RoomID           string    `gorm:"index;size:200" json:"roomId"`
	HostelID         string    `gorm:"index;size:120" json:"hostelId"`
	AllocatedAt      time.Time `json:"allocatedAt"`
	PaymentStatus    string    `gorm:"size:20;default:Pending" json:"paymentStatus"`
	PaymentDeadline  time.Time `json:"paymentDeadline"`
	Semester         string    `gorm:"size:20" json:"semester"`
	AcademicYear     string    `gorm:"size:20" json:"academicYear"`
	PaymentID        *string   `gorm:"size:40" json:"paymentId,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
