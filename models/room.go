package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Room IDs are composed as "<floorID>_<number>", e.g.
// "hostel1_floor_ground_G02". Occupants holds student registration numbers;
// its length may never exceed Capacity. Version backs conditional writes so
// two concurrent occupant mutations cannot both land on the same snapshot.
type Room struct {
	ID       string `gorm:"primaryKey;size:200" json:"id"`
	FloorID  string `gorm:"index;size:160" json:"floor"`
	HostelID string `gorm:"index;size:120" json:"hostelId"`
	Number   string `gorm:"size:50" json:"number"`

	Price     float64        `json:"price"`
	Capacity  int            `json:"capacity"`
	Occupants datatypes.JSON `json:"occupants"`
	Gender    string         `gorm:"size:10" json:"gender"`
	Features  datatypes.JSON `json:"features,omitempty"`

	IsReserved    bool       `json:"isReserved"`
	ReservedBy    *string    `gorm:"size:150" json:"reservedBy,omitempty"`
	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`
	IsAvailable   bool       `json:"isAvailable"`

	Version uint `json:"-"`

	// Filled on read for directory projections, never stored.
	HostelName string `gorm:"-" json:"hostelName,omitempty"`
	FloorName  string `gorm:"-" json:"floorName,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OccupantList decodes the occupants column, never returning nil.
func (r *Room) OccupantList() []string {
	var out []string
	if len(r.Occupants) > 0 {
		if err := json.Unmarshal(r.Occupants, &out); err != nil {
			return []string{}
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// SetOccupants encodes the occupant list and recomputes availability.
func (r *Room) SetOccupants(regs []string) {
	if regs == nil {
		regs = []string{}
	}
	raw, _ := json.Marshal(regs)
	r.Occupants = datatypes.JSON(raw)
	r.IsAvailable = RoomAvailable(r.Capacity, len(regs), r.IsReserved)
}

// RoomAvailable is the single availability rule: rooms with capacity 0 are
// administrative space and never available, reserved rooms are blocked, and
// everything else depends on free slots.
func RoomAvailable(capacity, occupants int, reserved bool) bool {
	return capacity > 0 && occupants < capacity && !reserved
}
