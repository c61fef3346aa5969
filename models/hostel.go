package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderMixed  = "Mixed"
)

// Hostel is the aggregate root of the directory. Floors and rooms are
// separate keyed entities referencing it, so a single room edit no longer
// rewrites the whole tree. TotalCapacity and CurrentOccupancy are derived
// from room rows and recomputed on every room mutation.
type Hostel struct {
	ID               string         `gorm:"primaryKey;size:120" json:"id"`
	Name             string         `gorm:"uniqueIndex;size:255" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	TotalCapacity    int            `json:"totalCapacity"`
	CurrentOccupancy int            `json:"currentOccupancy"`
	Gender           string         `gorm:"size:10" json:"gender"`
	IsActive         bool           `json:"isActive"`
	PricePerSemester float64        `json:"pricePerSemester"`
	Features         datatypes.JSON `json:"features,omitempty"`
	Images           datatypes.JSON `json:"images,omitempty"`

	Floors []Floor `gorm:"foreignKey:HostelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"floors"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
