package models

import "time"

// HostelSetting is a singleton configuration row. PaymentGracePeriod is in
// hours; 168 means allocations get seven days before the payment deadline.
type HostelSetting struct {
	ID                          uint      `gorm:"primaryKey" json:"id"`
	PaymentGracePeriod          int       `json:"paymentGracePeriod"`
	AutoRevokeUnpaidAllocations bool      `json:"autoRevokeUnpaidAllocations"`
	MaxRoomCapacity             int       `json:"maxRoomCapacity"`
	AllowMixedGender            bool      `json:"allowMixedGender"`
	AllowRoomChanges            bool      `json:"allowRoomChanges"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

// DefaultHostelSettings are served when no settings row exists yet.
func DefaultHostelSettings() HostelSetting {
	return HostelSetting{
		PaymentGracePeriod:          168,
		AutoRevokeUnpaidAllocations: true,
		MaxRoomCapacity:             4,
		AllowMixedGender:            false,
		AllowRoomChanges:            true,
	}
}
