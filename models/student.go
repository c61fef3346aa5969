package models

import "time"

type Student struct {
	RegNumber string `gorm:"primaryKey;size:30" json:"regNumber"`
	Name      string `gorm:"size:150" json:"name"`
	Surname   string `gorm:"size:150" json:"surname"`
	Gender    string `gorm:"size:10" json:"gender"`
	Programme string `gorm:"index;size:100" json:"programme"`
	Part      string `gorm:"size:5" json:"part"`
	Phone     string `gorm:"size:30" json:"phone,omitempty"`
	Email     string `gorm:"size:150" json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentStats is the aggregate view used by the admin dashboard.
type StudentStats struct {
	Total       int            `json:"total"`
	ByGender    map[string]int `json:"byGender"`
	ByPart      map[string]int `json:"byPart"`
	ByProgramme map[string]int `json:"byProgramme"`
}
