package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentStatusPending  = "Pending"
	PaymentStatusApproved = "Approved"
	PaymentStatusRejected = "Rejected"
)

// Derived labels for the reconciliation report. Never persisted; every
// screen asking "has this student paid" goes through the same derivation.
const (
	DerivedPaid         = "Paid"
	DerivedPartial      = "Partial"
	DerivedPending      = "Pending"
	DerivedNotAllocated = "Not Allocated"
)

var PaymentMethods = []string{"Bank Transfer", "Mobile Money", "Cash", "Card", "Other"}

type Payment struct {
	ID               string         `gorm:"primaryKey;size:40" json:"id"`
	StudentRegNumber string         `gorm:"index;size:30" json:"studentRegNumber"`
	AllocationID     string         `gorm:"index;size:40" json:"allocationId"`
	ReceiptNumber    string         `gorm:"size:100" json:"receiptNumber"`
	Amount           float64        `json:"amount"`
	PaymentMethod    string         `gorm:"size:30" json:"paymentMethod"`
	SubmittedAt      time.Time      `json:"submittedAt"`
	Status           string         `gorm:"size:20;default:Pending" json:"status"`
	ApprovedBy       *string        `gorm:"size:150" json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time     `json:"approvedAt,omitempty"`
	RejectionReason  *string        `gorm:"type:text" json:"rejectionReason,omitempty"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	Attachments      datatypes.JSON `json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
