package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hostel-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllocationService owns the room-allocation workflow: allocate, transfer,
// revoke, reserve, and the overdue sweep. Every multi-entity mutation runs
// in one transaction so an allocation record and its occupant entry cannot
// drift apart.
type AllocationService struct {
	DB       *gorm.DB
	Settings *SettingsService
}

func NewAllocationService(db *gorm.DB, settings *SettingsService) *AllocationService {
	return &AllocationService{DB: db, Settings: settings}
}

// Allocate assigns a room to a student. The student must be unallocated and
// the room must have a free slot; the payment deadline is the configured
// grace period from now.
func (s *AllocationService) Allocate(regNumber, roomID, hostelID string) (models.RoomAllocation, error) {
	settings, err := s.Settings.Fetch()
	if err != nil {
		return models.RoomAllocation{}, err
	}

	var alloc models.RoomAllocation
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.RoomAllocation{}).
			Where("student_reg_number = ?", regNumber).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check existing allocation: %w", err)
		}
		if count > 0 {
			return ErrAlreadyAllocated
		}

		var room models.Room
		if err := tx.Where("id = ? AND hostel_id = ?", roomID, hostelID).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("fetch room %s: %w", roomID, err)
		}

		occupants := room.OccupantList()
		if !models.RoomAvailable(room.Capacity, len(occupants), room.IsReserved) {
			return ErrRoomUnavailable
		}

		if err := writeRoomOccupants(tx, &room, append(occupants, regNumber)); err != nil {
			return err
		}

		now := time.Now()
		alloc = models.RoomAllocation{
			ID:               uuid.NewString(),
			StudentRegNumber: regNumber,
			RoomID:           roomID,
			HostelID:         hostelID,
			AllocatedAt:      now,
			PaymentStatus:    models.AllocationPaymentPending,
			PaymentDeadline:  now.Add(time.Duration(settings.PaymentGracePeriod) * time.Hour),
			Semester:         CurrentSemesterAt(now),
			AcademicYear:     CurrentAcademicYearAt(now),
		}
		if err := tx.Create(&alloc).Error; err != nil {
			return fmt.Errorf("create allocation: %w", err)
		}
		return refreshHostelCounters(tx, hostelID)
	})
	return alloc, err
}

// Change transfers an allocation to another room, possibly in another
// hostel. Disabled when room changes are off in the settings.
func (s *AllocationService) Change(allocationID, newRoomID, newHostelID string) (models.RoomAllocation, error) {
	settings, err := s.Settings.Fetch()
	if err != nil {
		return models.RoomAllocation{}, err
	}
	if !settings.AllowRoomChanges {
		return models.RoomAllocation{}, ErrRoomChangesOff
	}

	var alloc models.RoomAllocation
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alloc, "id = ?", allocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAllocationNotFound
			}
			return fmt.Errorf("fetch allocation %s: %w", allocationID, err)
		}

		// transferring into the room already held is a no-op
		if alloc.RoomID == newRoomID {
			return nil
		}

		var target models.Room
		if err := tx.Where("id = ? AND hostel_id = ?", newRoomID, newHostelID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("fetch room %s: %w", newRoomID, err)
		}
		targetOccupants := target.OccupantList()
		if !models.RoomAvailable(target.Capacity, len(targetOccupants), target.IsReserved) {
			return ErrRoomUnavailable
		}

		var source models.Room
		if err := tx.First(&source, "id = ?", alloc.RoomID).Error; err == nil {
			remaining, _ := removeOnce(source.OccupantList(), alloc.StudentRegNumber)
			if err := writeRoomOccupants(tx, &source, remaining); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("fetch room %s: %w", alloc.RoomID, err)
		}

		if err := writeRoomOccupants(tx, &target, append(targetOccupants, alloc.StudentRegNumber)); err != nil {
			return err
		}

		oldHostelID := alloc.HostelID
		alloc.RoomID = newRoomID
		alloc.HostelID = newHostelID
		if err := tx.Save(&alloc).Error; err != nil {
			return fmt.Errorf("update allocation %s: %w", allocationID, err)
		}

		if err := refreshHostelCounters(tx, newHostelID); err != nil {
			return err
		}
		if oldHostelID != newHostelID {
			return refreshHostelCounters(tx, oldHostelID)
		}
		return nil
	})
	return alloc, err
}

// Revoke deletes an allocation and removes the student from the room's
// occupants exactly once. Availability is recomputed from the occupants that
// remain rather than forced to true. Revoking an already-revoked allocation
// is a no-op.
func (s *AllocationService) Revoke(allocationID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var alloc models.RoomAllocation
		if err := tx.First(&alloc, "id = ?", allocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("fetch allocation %s: %w", allocationID, err)
		}

		var room models.Room
		err := tx.First(&room, "id = ?", alloc.RoomID).Error
		if err == nil {
			if remaining, removed := removeOnce(room.OccupantList(), alloc.StudentRegNumber); removed {
				if err := writeRoomOccupants(tx, &room, remaining); err != nil {
					return err
				}
			}
			if err := refreshHostelCounters(tx, alloc.HostelID); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("fetch room %s: %w", alloc.RoomID, err)
		}

		return tx.Delete(&models.RoomAllocation{}, "id = ?", allocationID).Error
	})
}

// RemoveOccupant takes a student out of a room and deletes the matching
// allocation rows, recomputing availability and hostel occupancy.
func (s *AllocationService) RemoveOccupant(hostelID, roomID, regNumber string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Where("id = ? AND hostel_id = ?", roomID, hostelID).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("fetch room %s: %w", roomID, err)
		}

		if remaining, removed := removeOnce(room.OccupantList(), regNumber); removed {
			if err := writeRoomOccupants(tx, &room, remaining); err != nil {
				return err
			}
		}
		if err := refreshHostelCounters(tx, hostelID); err != nil {
			return err
		}
		return tx.Where("student_reg_number = ? AND room_id = ? AND hostel_id = ?", regNumber, roomID, hostelID).
			Delete(&models.RoomAllocation{}).Error
	})
}

// Reserve puts an administrative hold on a room for the given number of days.
func (s *AllocationService) Reserve(roomID, adminEmail string, days int) (models.Room, error) {
	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("fetch room %s: %w", roomID, err)
		}
		until := time.Now().Add(time.Duration(days) * 24 * time.Hour)
		return writeRoomReservation(tx, &room, true, &adminEmail, &until)
	})
	return room, err
}

// Unreserve clears the hold; availability comes back if slots remain.
func (s *AllocationService) Unreserve(roomID string) (models.Room, error) {
	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("fetch room %s: %w", roomID, err)
		}
		return writeRoomReservation(tx, &room, false, nil, nil)
	})
	return room, err
}

func (s *AllocationService) FetchStudentAllocations(regNumber string) ([]models.RoomAllocation, error) {
	var allocations []models.RoomAllocation
	err := s.DB.Where("student_reg_number = ?", regNumber).Find(&allocations).Error
	if err != nil {
		return nil, fmt.Errorf("fetch allocations for %s: %w", regNumber, err)
	}
	return allocations, nil
}

func (s *AllocationService) FetchAll() ([]models.RoomAllocation, error) {
	var allocations []models.RoomAllocation
	if err := s.DB.Order("allocated_at DESC").Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("fetch allocations: %w", err)
	}
	return allocations, nil
}

func (s *AllocationService) FetchByID(allocationID string) (models.RoomAllocation, error) {
	var alloc models.RoomAllocation
	if err := s.DB.First(&alloc, "id = ?", allocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoomAllocation{}, ErrAllocationNotFound
		}
		return models.RoomAllocation{}, fmt.Errorf("fetch allocation %s: %w", allocationID, err)
	}
	return alloc, nil
}

// RoomDetails resolves an allocation to its room, hostel and price, with the
// denormalized names filled in. The room's own price wins; the hostel's
// per-semester price is the fallback for rooms created before prices moved
// onto rooms.
type RoomDetails struct {
	Room   models.Room   `json:"room"`
	Hostel models.Hostel `json:"hostel"`
	Price  float64       `json:"price"`
}

func (s *AllocationService) RoomDetails(alloc models.RoomAllocation) (RoomDetails, error) {
	var hostel models.Hostel
	if err := s.DB.First(&hostel, "id = ?", alloc.HostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoomDetails{}, ErrHostelNotFound
		}
		return RoomDetails{}, fmt.Errorf("fetch hostel %s: %w", alloc.HostelID, err)
	}
	var room models.Room
	if err := s.DB.First(&room, "id = ?", alloc.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoomDetails{}, ErrRoomNotFound
		}
		return RoomDetails{}, fmt.Errorf("fetch room %s: %w", alloc.RoomID, err)
	}

	var floor models.Floor
	if err := s.DB.First(&floor, "id = ?", room.FloorID).Error; err == nil {
		room.FloorName = floor.Name
	}
	room.HostelName = hostel.Name

	price := room.Price
	if price == 0 {
		price = hostel.PricePerSemester
	}
	return RoomDetails{Room: room, Hostel: hostel, Price: price}, nil
}

// OverdueCheckResult reports what a deadline pass looked at and changed.
type OverdueCheckResult struct {
	CheckedCount int `json:"checkedCount"`
	OverdueCount int `json:"overdueCount"`
	UpdatedCount int `json:"updatedCount"`
}

// CheckAndUpdateOverduePayments flips Pending allocations past their
// deadline to Overdue.
func (s *AllocationService) CheckAndUpdateOverduePayments() (OverdueCheckResult, error) {
	var pending []models.RoomAllocation
	if err := s.DB.Where("payment_status = ?", models.AllocationPaymentPending).Find(&pending).Error; err != nil {
		return OverdueCheckResult{}, fmt.Errorf("fetch pending allocations: %w", err)
	}

	now := time.Now()
	result := OverdueCheckResult{CheckedCount: len(pending)}
	for i := range pending {
		if now.After(pending[i].PaymentDeadline) {
			result.OverdueCount++
			err := s.DB.Model(&models.RoomAllocation{}).
				Where("id = ?", pending[i].ID).
				Update("payment_status", models.AllocationPaymentOverdue).Error
			if err != nil {
				return result, fmt.Errorf("mark allocation %s overdue: %w", pending[i].ID, err)
			}
			result.UpdatedCount++
		}
	}
	if result.UpdatedCount > 0 {
		log.Printf("updated %d allocation(s) to overdue status", result.UpdatedCount)
	}
	return result, nil
}

// SweepResult is the outcome of one auto-revocation pass.
type SweepResult struct {
	AutoRevokeEnabled bool                 `json:"autoRevokeEnabled"`
	TotalExpired      int                  `json:"totalExpired"`
	RevokedCount      int                  `json:"revokedCount"`
	FailureCount      int                  `json:"failureCount"`
	Results           []SweepRevokeOutcome `json:"results"`
}

type SweepRevokeOutcome struct {
	AllocationID     string `json:"allocationId"`
	StudentRegNumber string `json:"studentRegNumber"`
	Success          bool   `json:"success"`
	Error            string `json:"error,omitempty"`
}

// SweepExpiredAllocations revokes unpaid allocations whose deadline plus the
// configured grace period has passed. A no-op when auto-revocation is
// disabled in the settings.
func (s *AllocationService) SweepExpiredAllocations() (SweepResult, error) {
	settings, err := s.Settings.Fetch()
	if err != nil {
		return SweepResult{}, err
	}
	if !settings.AutoRevokeUnpaidAllocations {
		return SweepResult{AutoRevokeEnabled: false}, nil
	}

	expired, err := s.expiredAllocations(settings)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{AutoRevokeEnabled: true, TotalExpired: len(expired)}
	for i := range expired {
		outcome := SweepRevokeOutcome{
			AllocationID:     expired[i].ID,
			StudentRegNumber: expired[i].StudentRegNumber,
		}
		if err := s.Revoke(expired[i].ID); err != nil {
			log.Printf("failed to revoke allocation %s: %v", expired[i].ID, err)
			outcome.Error = err.Error()
			result.FailureCount++
		} else {
			log.Printf("revoked allocation %s for student %s", expired[i].ID, expired[i].StudentRegNumber)
			outcome.Success = true
			result.RevokedCount++
		}
		result.Results = append(result.Results, outcome)
	}
	return result, nil
}

// ExpiredAllocationInfo is the monitoring view of the sweep candidates,
// served by the GET variant of the deadline-check endpoint.
type ExpiredAllocationInfo struct {
	ID               string    `json:"id"`
	StudentRegNumber string    `json:"studentRegNumber"`
	PaymentDeadline  time.Time `json:"paymentDeadline"`
	HoursOverdue     int       `json:"hoursOverdue"`
}

type DeadlineStatus struct {
	AutoRevokeEnabled      bool                    `json:"autoRevokeEnabled"`
	PaymentGracePeriod     int                     `json:"paymentGracePeriod"`
	TotalUnpaidAllocations int                     `json:"totalUnpaidAllocations"`
	ExpiredAllocations     int                     `json:"expiredAllocations"`
	ExpiredDetails         []ExpiredAllocationInfo `json:"expiredDetails"`
}

func (s *AllocationService) DeadlineStatus() (DeadlineStatus, error) {
	settings, err := s.Settings.Fetch()
	if err != nil {
		return DeadlineStatus{}, err
	}

	var unpaid []models.RoomAllocation
	if err := s.DB.Where("payment_status IN ?",
		[]string{models.AllocationPaymentPending, models.AllocationPaymentOverdue}).
		Find(&unpaid).Error; err != nil {
		return DeadlineStatus{}, fmt.Errorf("fetch unpaid allocations: %w", err)
	}

	status := DeadlineStatus{
		AutoRevokeEnabled:      settings.AutoRevokeUnpaidAllocations,
		PaymentGracePeriod:     settings.PaymentGracePeriod,
		TotalUnpaidAllocations: len(unpaid),
		ExpiredDetails:         []ExpiredAllocationInfo{},
	}

	now := time.Now()
	grace := time.Duration(settings.PaymentGracePeriod) * time.Hour
	for i := range unpaid {
		graceEnd := unpaid[i].PaymentDeadline.Add(grace)
		if now.After(graceEnd) {
			status.ExpiredDetails = append(status.ExpiredDetails, ExpiredAllocationInfo{
				ID:               unpaid[i].ID,
				StudentRegNumber: unpaid[i].StudentRegNumber,
				PaymentDeadline:  unpaid[i].PaymentDeadline,
				HoursOverdue:     int(now.Sub(graceEnd).Hours()),
			})
		}
	}
	status.ExpiredAllocations = len(status.ExpiredDetails)
	return status, nil
}

// The deadline already equals one grace period, so allocations are only
// revoked after a second grace period on top of it.
func (s *AllocationService) expiredAllocations(settings models.HostelSetting) ([]models.RoomAllocation, error) {
	var unpaid []models.RoomAllocation
	if err := s.DB.Where("payment_status IN ?",
		[]string{models.AllocationPaymentPending, models.AllocationPaymentOverdue}).
		Find(&unpaid).Error; err != nil {
		return nil, fmt.Errorf("fetch unpaid allocations: %w", err)
	}

	now := time.Now()
	grace := time.Duration(settings.PaymentGracePeriod) * time.Hour
	expired := unpaid[:0]
	for i := range unpaid {
		if now.After(unpaid[i].PaymentDeadline.Add(grace)) {
			expired = append(expired, unpaid[i])
		}
	}
	return expired, nil
}
