package models

import "time"

const (
	ApplicationPending  = "Pending"
	ApplicationAccepted = "Accepted"
	ApplicationArchived = "Archived"
)

// Application is a student's accommodation application, keyed by the
// registration number it was submitted under.
type Application struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	RegNumber string `gorm:"uniqueIndex;size:30" json:"regNumber"`
	Name      string `gorm:"size:150" json:"name"`
	Surname   string `gorm:"size:150" json:"surname"`
	Gender    string `gorm:"size:10" json:"gender"`
	Programme string `gorm:"size:100" json:"programme"`
	Part      string `gorm:"size:5" json:"part"`
	Status    string `gorm:"size:20;default:Pending" json:"status"`

	SubmittedAt time.Time `json:"submittedAt"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
