package services

import (
	"encoding/json"
	"fmt"
	"time"

	"hostel-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// writeRoomOccupants persists a new occupant list with a conditional write
// against the room's version counter. A stale snapshot loses the race and
// gets ErrRoomConflict instead of silently overfilling the room.
func writeRoomOccupants(tx *gorm.DB, room *models.Room, occupants []string) error {
	if occupants == nil {
		occupants = []string{}
	}
	raw, err := json.Marshal(occupants)
	if err != nil {
		return fmt.Errorf("encode occupants: %w", err)
	}
	available := models.RoomAvailable(room.Capacity, len(occupants), room.IsReserved)

	res := tx.Model(&models.Room{}).
		Where("id = ? AND version = ?", room.ID, room.Version).
		Updates(map[string]interface{}{
			"occupants":    datatypes.JSON(raw),
			"is_available": available,
			"version":      room.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("update room %s: %w", room.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomConflict
	}

	room.Occupants = datatypes.JSON(raw)
	room.IsAvailable = available
	room.Version++
	return nil
}

// writeRoomReservation sets or clears the reservation hold and recomputes
// availability from the occupants that remain.
func writeRoomReservation(tx *gorm.DB, room *models.Room, reserved bool, reservedBy *string, reservedUntil *time.Time) error {
	available := models.RoomAvailable(room.Capacity, len(room.OccupantList()), reserved)

	res := tx.Model(&models.Room{}).
		Where("id = ? AND version = ?", room.ID, room.Version).
		Updates(map[string]interface{}{
			"is_reserved":    reserved,
			"reserved_by":    reservedBy,
			"reserved_until": reservedUntil,
			"is_available":   available,
			"version":        room.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("update room %s: %w", room.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomConflict
	}

	room.IsReserved = reserved
	room.ReservedBy = reservedBy
	room.ReservedUntil = reservedUntil
	room.IsAvailable = available
	room.Version++
	return nil
}

// refreshHostelCounters recomputes TotalCapacity and CurrentOccupancy by
// summing room rows. Called inside every transaction that adds, removes or
// (un)occupies rooms so the derived counters never drift.
func refreshHostelCounters(tx *gorm.DB, hostelID string) error {
	var rooms []models.Room
	if err := tx.Where("hostel_id = ?", hostelID).Find(&rooms).Error; err != nil {
		return fmt.Errorf("load rooms for hostel %s: %w", hostelID, err)
	}

	capacity, occupancy := 0, 0
	for i := range rooms {
		capacity += rooms[i].Capacity
		occupancy += len(rooms[i].OccupantList())
	}

	return tx.Model(&models.Hostel{}).Where("id = ?", hostelID).
		Updates(map[string]interface{}{
			"total_capacity":    capacity,
			"current_occupancy": occupancy,
		}).Error
}

// removeOnce removes the first occurrence of v, reporting whether anything
// was removed.
func removeOnce(list []string, v string) ([]string, bool) {
	for i, s := range list {
		if s == v {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}
