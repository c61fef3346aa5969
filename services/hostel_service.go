package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"hostel-backend/models"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HostelService owns the directory: hostels, their floors and rooms.
type HostelService struct {
	DB       *gorm.DB
	Settings *SettingsService
}

func NewHostelService(db *gorm.DB) *HostelService {
	return &HostelService{DB: db, Settings: NewSettingsService(db)}
}

// FetchAll returns every hostel with its full floor/room tree, rooms carrying
// the denormalized hostel and floor names the directory screens expect.
func (s *HostelService) FetchAll() ([]models.Hostel, error) {
	var hostels []models.Hostel
	err := s.DB.
		Preload("Floors", func(db *gorm.DB) *gorm.DB { return db.Order("floors.number ASC") }).
		Preload("Floors.Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.number ASC") }).
		Order("name ASC").
		Find(&hostels).Error
	if err != nil {
		return nil, fmt.Errorf("fetch hostels: %w", err)
	}
	for i := range hostels {
		fillRoomNames(&hostels[i])
	}
	return hostels, nil
}

func (s *HostelService) FetchByID(hostelID string) (models.Hostel, error) {
	var hostel models.Hostel
	err := s.DB.
		Preload("Floors", func(db *gorm.DB) *gorm.DB { return db.Order("floors.number ASC") }).
		Preload("Floors.Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.number ASC") }).
		First(&hostel, "id = ?", hostelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hostel{}, ErrHostelNotFound
		}
		return models.Hostel{}, fmt.Errorf("fetch hostel %s: %w", hostelID, err)
	}
	fillRoomNames(&hostel)
	return hostel, nil
}

func fillRoomNames(h *models.Hostel) {
	for i := range h.Floors {
		floor := &h.Floors[i]
		for j := range floor.Rooms {
			floor.Rooms[j].HostelName = h.Name
			floor.Rooms[j].FloorName = floor.Name
		}
	}
}

type CreateHostelInput struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description"`
	Gender           string   `json:"gender" validate:"required,oneof=Male Female Mixed"`
	IsActive         *bool    `json:"isActive"`
	PricePerSemester float64  `json:"pricePerSemester" validate:"gte=0"`
	Features         []string `json:"features"`
	Images           []string `json:"images"`
}

// Create inserts a hostel keyed by a slug of its name. Creating a hostel
// whose name already exists is idempotent: the existing ID is returned with
// a warning instead of inserting a duplicate.
func (s *HostelService) Create(input CreateHostelInput) (string, error) {
	name := strings.TrimSpace(input.Name)

	var existing models.Hostel
	err := s.DB.Where("LOWER(name) = ?", strings.ToLower(name)).First(&existing).Error
	if err == nil {
		log.Printf("warning: hostel %q already exists with id %s, skipping creation", name, existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check hostel name: %w", err)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	hostel := models.Hostel{
		ID:               slug.Make(name),
		Name:             name,
		Description:      input.Description,
		Gender:           input.Gender,
		IsActive:         active,
		PricePerSemester: input.PricePerSemester,
		Features:         toJSONList(input.Features),
		Images:           toJSONList(input.Images),
	}
	if err := s.DB.Create(&hostel).Error; err != nil {
		return "", fmt.Errorf("create hostel: %w", err)
	}
	return hostel.ID, nil
}

type UpdateHostelInput struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	Gender           *string   `json:"gender" validate:"omitempty,oneof=Male Female Mixed"`
	IsActive         *bool     `json:"isActive"`
	PricePerSemester *float64  `json:"pricePerSemester" validate:"omitempty,gte=0"`
	Features         *[]string `json:"features"`
	Images           *[]string `json:"images"`
}

func (s *HostelService) Update(hostelID string, input UpdateHostelInput) (models.Hostel, error) {
	var hostel models.Hostel
	if err := s.DB.First(&hostel, "id = ?", hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hostel{}, ErrHostelNotFound
		}
		return models.Hostel{}, fmt.Errorf("fetch hostel %s: %w", hostelID, err)
	}

	if input.Name != nil {
		hostel.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		hostel.Description = *input.Description
	}
	if input.Gender != nil {
		hostel.Gender = *input.Gender
	}
	if input.IsActive != nil {
		hostel.IsActive = *input.IsActive
	}
	if input.PricePerSemester != nil {
		hostel.PricePerSemester = *input.PricePerSemester
	}
	if input.Features != nil {
		hostel.Features = toJSONList(*input.Features)
	}
	if input.Images != nil {
		hostel.Images = toJSONList(*input.Images)
	}

	if err := s.DB.Save(&hostel).Error; err != nil {
		return models.Hostel{}, fmt.Errorf("update hostel %s: %w", hostelID, err)
	}
	return hostel, nil
}

// Delete removes a hostel together with its floors, rooms and every
// allocation referencing it, in one transaction. The original cascade was
// best-effort; here a partial failure rolls everything back.
func (s *HostelService) Delete(hostelID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var hostel models.Hostel
		if err := tx.First(&hostel, "id = ?", hostelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHostelNotFound
			}
			return fmt.Errorf("fetch hostel %s: %w", hostelID, err)
		}

		res := tx.Where("hostel_id = ?", hostelID).Delete(&models.RoomAllocation{})
		if res.Error != nil {
			return fmt.Errorf("delete allocations for hostel %s: %w", hostelID, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Printf("removed %d allocation(s) for hostel %s", res.RowsAffected, hostelID)
		}

		if err := tx.Where("hostel_id = ?", hostelID).Delete(&models.Room{}).Error; err != nil {
			return fmt.Errorf("delete rooms for hostel %s: %w", hostelID, err)
		}
		if err := tx.Where("hostel_id = ?", hostelID).Delete(&models.Floor{}).Error; err != nil {
			return fmt.Errorf("delete floors for hostel %s: %w", hostelID, err)
		}
		return tx.Delete(&models.Hostel{}, "id = ?", hostelID).Error
	})
}

// AddFloor appends a floor, rejecting duplicate floor numbers.
func (s *HostelService) AddFloor(hostelID, number, name string) (models.Floor, error) {
	var floor models.Floor
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var hostel models.Hostel
		if err := tx.First(&hostel, "id = ?", hostelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHostelNotFound
			}
			return fmt.Errorf("fetch hostel %s: %w", hostelID, err)
		}

		var count int64
		if err := tx.Model(&models.Floor{}).
			Where("hostel_id = ? AND number = ?", hostelID, number).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check floor number: %w", err)
		}
		if count > 0 {
			return ErrFloorExists
		}

		floor = models.Floor{
			ID:       fmt.Sprintf("%s_floor_%s", hostelID, number),
			HostelID: hostelID,
			Number:   number,
			Name:     name,
		}
		return tx.Create(&floor).Error
	})
	return floor, err
}

type AddRoomInput struct {
	Number   string   `json:"number" validate:"required"`
	Capacity int      `json:"capacity" validate:"gte=0"`
	Gender   string   `json:"gender" validate:"required,oneof=Male Female Mixed"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Features []string `json:"features"`
}

// AddRoom creates a single room on a floor. The price defaults to the
// hostel's per-semester price when none is given; capacity may not exceed
// the configured maximum.
func (s *HostelService) AddRoom(hostelID, floorID string, input AddRoomInput) (models.Room, error) {
	if err := s.checkCapacity(input.Capacity); err != nil {
		return models.Room{}, err
	}

	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		hostel, floor, err := loadHostelFloor(tx, hostelID, floorID)
		if err != nil {
			return err
		}

		price := hostel.PricePerSemester
		if input.Price != nil {
			price = *input.Price
		}

		room = models.Room{
			ID:       fmt.Sprintf("%s_%s", floor.ID, input.Number),
			FloorID:  floor.ID,
			HostelID: hostelID,
			Number:   input.Number,
			Price:    price,
			Capacity: input.Capacity,
			Gender:   input.Gender,
			Features: toJSONList(input.Features),
		}
		room.SetOccupants(nil)
		if err := tx.Create(&room).Error; err != nil {
			return fmt.Errorf("create room %s: %w", room.ID, err)
		}
		return refreshHostelCounters(tx, hostelID)
	})
	return room, err
}

type AddRoomsInRangeInput struct {
	StartNumber int      `json:"startNumber" validate:"required"`
	EndNumber   int      `json:"endNumber" validate:"required,gtefield=StartNumber"`
	Prefix      string   `json:"prefix"`
	Suffix      string   `json:"suffix"`
	Capacity    int      `json:"capacity" validate:"gte=0"`
	Gender      string   `json:"gender" validate:"required,oneof=Male Female Mixed"`
	Features    []string `json:"features"`
}

// AddRoomsInRange bulk-provisions rooms numbered prefix+i+suffix for i in
// [start, end]. Numbers already present on the floor are skipped silently so
// repeated admin runs stay idempotent. Returns how many rooms were created.
func (s *HostelService) AddRoomsInRange(hostelID, floorID string, input AddRoomsInRangeInput) (int, error) {
	if err := s.checkCapacity(input.Capacity); err != nil {
		return 0, err
	}

	created := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		hostel, floor, err := loadHostelFloor(tx, hostelID, floorID)
		if err != nil {
			return err
		}

		var existing []models.Room
		if err := tx.Where("floor_id = ?", floor.ID).Find(&existing).Error; err != nil {
			return fmt.Errorf("load rooms for floor %s: %w", floor.ID, err)
		}
		taken := make(map[string]bool, len(existing))
		for i := range existing {
			taken[existing[i].Number] = true
		}

		for i := input.StartNumber; i <= input.EndNumber; i++ {
			number := fmt.Sprintf("%s%d%s", input.Prefix, i, input.Suffix)
			if taken[number] {
				log.Printf("warning: room %s already exists in floor %s", number, floor.Name)
				continue
			}

			room := models.Room{
				ID:       fmt.Sprintf("%s_%s", floor.ID, number),
				FloorID:  floor.ID,
				HostelID: hostelID,
				Number:   number,
				Price:    hostel.PricePerSemester,
				Capacity: input.Capacity,
				Gender:   input.Gender,
				Features: toJSONList(input.Features),
			}
			room.SetOccupants(nil)
			if err := tx.Create(&room).Error; err != nil {
				return fmt.Errorf("create room %s: %w", room.ID, err)
			}
			created++
		}
		return refreshHostelCounters(tx, hostelID)
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// RemoveRoom deletes a room and the allocations that reference it, then
// recomputes the hostel counters.
func (s *HostelService) RemoveRoom(hostelID, roomID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Where("id = ? AND hostel_id = ?", roomID, hostelID).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("fetch room %s: %w", roomID, err)
		}

		res := tx.Where("room_id = ? AND hostel_id = ?", roomID, hostelID).Delete(&models.RoomAllocation{})
		if res.Error != nil {
			return fmt.Errorf("delete allocations for room %s: %w", roomID, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Printf("removed %d allocation(s) for room %s", res.RowsAffected, roomID)
		}

		if err := tx.Delete(&models.Room{}, "id = ?", roomID).Error; err != nil {
			return fmt.Errorf("delete room %s: %w", roomID, err)
		}
		return refreshHostelCounters(tx, hostelID)
	})
}

// RemoveFloor deletes a floor, its rooms and their allocations.
func (s *HostelService) RemoveFloor(hostelID, floorID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var floor models.Floor
		if err := tx.Where("id = ? AND hostel_id = ?", floorID, hostelID).First(&floor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFloorNotFound
			}
			return fmt.Errorf("fetch floor %s: %w", floorID, err)
		}

		var rooms []models.Room
		if err := tx.Where("floor_id = ?", floorID).Find(&rooms).Error; err != nil {
			return fmt.Errorf("load rooms for floor %s: %w", floorID, err)
		}
		if len(rooms) > 0 {
			roomIDs := make([]string, len(rooms))
			for i := range rooms {
				roomIDs[i] = rooms[i].ID
			}
			res := tx.Where("hostel_id = ? AND room_id IN ?", hostelID, roomIDs).Delete(&models.RoomAllocation{})
			if res.Error != nil {
				return fmt.Errorf("delete allocations for floor %s: %w", floorID, res.Error)
			}
			if res.RowsAffected > 0 {
				log.Printf("removed %d allocation(s) for floor %s", res.RowsAffected, floor.Name)
			}
			if err := tx.Where("floor_id = ?", floorID).Delete(&models.Room{}).Error; err != nil {
				return fmt.Errorf("delete rooms for floor %s: %w", floorID, err)
			}
		}

		if err := tx.Delete(&models.Floor{}, "id = ?", floorID).Error; err != nil {
			return fmt.Errorf("delete floor %s: %w", floorID, err)
		}
		return refreshHostelCounters(tx, hostelID)
	})
}

// AvailableRooms lists rooms a student of the given gender can take: active
// hostel, gender compatible, unreserved, with free slots.
func (s *HostelService) AvailableRooms(gender string) ([]models.Room, error) {
	hostels, err := s.FetchAll()
	if err != nil {
		return nil, err
	}

	available := []models.Room{}
	for i := range hostels {
		hostel := &hostels[i]
		if !hostel.IsActive || !genderMatches(hostel.Gender, gender) {
			continue
		}
		for j := range hostel.Floors {
			floor := &hostel.Floors[j]
			for k := range floor.Rooms {
				room := floor.Rooms[k]
				if room.IsAvailable && !room.IsReserved &&
					len(room.OccupantList()) < room.Capacity &&
					genderMatches(room.Gender, gender) {
					available = append(available, room)
				}
			}
		}
	}
	return available, nil
}

func (s *HostelService) checkCapacity(capacity int) error {
	settings, err := s.Settings.Fetch()
	if err != nil {
		return err
	}
	if capacity > settings.MaxRoomCapacity {
		return ErrCapacityExceeded
	}
	return nil
}

// An empty student gender means no filter was asked for.
func genderMatches(roomGender, studentGender string) bool {
	return studentGender == "" || roomGender == studentGender ||
		roomGender == models.GenderMixed || studentGender == models.GenderMixed
}

func loadHostelFloor(tx *gorm.DB, hostelID, floorID string) (models.Hostel, models.Floor, error) {
	var hostel models.Hostel
	if err := tx.First(&hostel, "id = ?", hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hostel, models.Floor{}, ErrHostelNotFound
		}
		return hostel, models.Floor{}, fmt.Errorf("fetch hostel %s: %w", hostelID, err)
	}
	var floor models.Floor
	if err := tx.Where("id = ? AND hostel_id = ?", floorID, hostelID).First(&floor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hostel, floor, ErrFloorNotFound
		}
		return hostel, floor, fmt.Errorf("fetch floor %s: %w", floorID, err)
	}
	return hostel, floor, nil
}

func toJSONList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	raw, _ := json.Marshal(list)
	return datatypes.JSON(raw)
}
