package services

import (
	"fmt"

	"hostel-backend/models"

	"gorm.io/gorm"
)

// ExportService assembles the flat rows the admin export screens download.
type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

// AllocationExportRow is one line of the allocations workbook: the allocation
// joined with the student record and the room it points at.
type AllocationExportRow struct {
	AllocationID     string
	StudentRegNumber string
	StudentName      string
	StudentSurname   string
	Gender           string
	Programme        string
	HostelName       string
	RoomNumber       string
	PaymentStatus    string
	PaymentDeadline  string
	Semester         string
	AcademicYear     string
}

func (s *ExportService) AllocationRows() ([]AllocationExportRow, error) {
	var allocations []models.RoomAllocation
	if err := s.DB.Order("allocated_at DESC").Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("fetch allocations: %w", err)
	}

	students := map[string]models.Student{}
	var studentRecords []models.Student
	if err := s.DB.Find(&studentRecords).Error; err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	for i := range studentRecords {
		students[studentRecords[i].RegNumber] = studentRecords[i]
	}

	rooms := map[string]models.Room{}
	var roomRecords []models.Room
	if err := s.DB.Find(&roomRecords).Error; err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	for i := range roomRecords {
		rooms[roomRecords[i].ID] = roomRecords[i]
	}

	hostels := map[string]string{}
	var hostelRecords []models.Hostel
	if err := s.DB.Find(&hostelRecords).Error; err != nil {
		return nil, fmt.Errorf("fetch hostels: %w", err)
	}
	for i := range hostelRecords {
		hostels[hostelRecords[i].ID] = hostelRecords[i].Name
	}

	rows := make([]AllocationExportRow, 0, len(allocations))
	for i := range allocations {
		alloc := allocations[i]
		row := AllocationExportRow{
			AllocationID:     alloc.ID,
			StudentRegNumber: alloc.StudentRegNumber,
			HostelName:       hostels[alloc.HostelID],
			PaymentStatus:    alloc.PaymentStatus,
			PaymentDeadline:  alloc.PaymentDeadline.Format("2006-01-02"),
			Semester:         alloc.Semester,
			AcademicYear:     alloc.AcademicYear,
		}
		if student, ok := students[alloc.StudentRegNumber]; ok {
			row.StudentName = student.Name
			row.StudentSurname = student.Surname
			row.Gender = student.Gender
			row.Programme = student.Programme
		}
		if room, ok := rooms[alloc.RoomID]; ok {
			row.RoomNumber = room.Number
		}
		rows = append(rows, row)
	}
	return rows, nil
}
