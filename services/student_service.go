package services

import (
	"errors"
	"fmt"
	"strings"

	"hostel-backend/models"

	"gorm.io/gorm"
)

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

func (s *StudentService) List() ([]models.Student, error) {
	var students []models.Student
	if err := s.DB.Order("reg_number ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	return students, nil
}

func (s *StudentService) FindByRegNumber(regNumber string) (models.Student, error) {
	var student models.Student
	if err := s.DB.First(&student, "reg_number = ?", regNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, fmt.Errorf("fetch student %s: %w", regNumber, err)
	}
	return student, nil
}

// Search matches the term against reg number, name, surname and programme.
func (s *StudentService) Search(term string) ([]models.Student, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var students []models.Student
	err := s.DB.
		Where("LOWER(reg_number) LIKE ? OR LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(programme) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("reg_number ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return students, nil
}

func (s *StudentService) ByProgramme(programme string) ([]models.Student, error) {
	var students []models.Student
	if err := s.DB.Where("programme = ?", programme).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("fetch students by programme: %w", err)
	}
	return students, nil
}

func (s *StudentService) ByGender(gender string) ([]models.Student, error) {
	var students []models.Student
	if err := s.DB.Where("gender = ?", gender).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("fetch students by gender: %w", err)
	}
	return students, nil
}

func (s *StudentService) ByPart(part string) ([]models.Student, error) {
	var students []models.Student
	if err := s.DB.Where("part = ?", part).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("fetch students by part: %w", err)
	}
	return students, nil
}

func (s *StudentService) Stats() (models.StudentStats, error) {
	students, err := s.List()
	if err != nil {
		return models.StudentStats{}, err
	}

	stats := models.StudentStats{
		Total:       len(students),
		ByGender:    map[string]int{},
		ByPart:      map[string]int{},
		ByProgramme: map[string]int{},
	}
	for i := range students {
		stats.ByGender[students[i].Gender]++
		stats.ByPart[students[i].Part]++
		stats.ByProgramme[students[i].Programme]++
	}
	return stats, nil
}
