package models

import "time"

// Floor IDs are composed as "<hostelID>_floor_<number>" to keep the
// human-readable identifiers the rest of the system links against.
type Floor struct {
	ID       string `gorm:"primaryKey;size:160" json:"id"`
	HostelID string `gorm:"index:idx_floor_hostel_number,unique;size:120" json:"hostelId"`
	Number   string `gorm:"index:idx_floor_hostel_number,unique;size:30" json:"number"`
	Name     string `gorm:"size:100" json:"name"`

	Rooms []Room `gorm:"foreignKey:FloorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"rooms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
