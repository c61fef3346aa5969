package services

import (
	"errors"
	"fmt"

	"hostel-backend/models"

	"gorm.io/gorm"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

func (s *ApplicationService) FetchAll() ([]models.Application, error) {
	var applications []models.Application
	if err := s.DB.Order("submitted_at DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("fetch applications: %w", err)
	}
	return applications, nil
}

func (s *ApplicationService) FetchByStatus(status string) ([]models.Application, error) {
	var applications []models.Application
	if err := s.DB.Where("status = ?", status).Order("submitted_at DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("fetch applications by status: %w", err)
	}
	return applications, nil
}

// UpdateStatus moves an application between Pending, Accepted and Archived.
func (s *ApplicationService) UpdateStatus(regNumber, status string) (models.Application, error) {
	switch status {
	case models.ApplicationPending, models.ApplicationAccepted, models.ApplicationArchived:
	default:
		return models.Application{}, ErrInvalidStatus
	}

	var application models.Application
	if err := s.DB.First(&application, "reg_number = ?", regNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Application{}, ErrApplicationNotFound
		}
		return models.Application{}, fmt.Errorf("fetch application %s: %w", regNumber, err)
	}

	application.Status = status
	if err := s.DB.Save(&application).Error; err != nil {
		return models.Application{}, fmt.Errorf("update application %s: %w", regNumber, err)
	}
	return application, nil
}
