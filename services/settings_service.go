package services

import (
	"errors"
	"fmt"

	"hostel-backend/models"

	"gorm.io/gorm"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Fetch returns the singleton settings row, falling back to the hardcoded
// defaults when none has been written yet.
func (s *SettingsService) Fetch() (models.HostelSetting, error) {
	var setting models.HostelSetting
	if err := s.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultHostelSettings(), nil
		}
		return models.HostelSetting{}, fmt.Errorf("fetch settings: %w", err)
	}
	return setting, nil
}

type UpdateSettingsInput struct {
	PaymentGracePeriod          *int  `json:"paymentGracePeriod" validate:"omitempty,min=1"`
	AutoRevokeUnpaidAllocations *bool `json:"autoRevokeUnpaidAllocations"`
	MaxRoomCapacity             *int  `json:"maxRoomCapacity" validate:"omitempty,min=1"`
	AllowMixedGender            *bool `json:"allowMixedGender"`
	AllowRoomChanges            *bool `json:"allowRoomChanges"`
}

// Update upserts the singleton: partial fields are applied over the current
// (or default) values, and the row is created when missing.
func (s *SettingsService) Update(input UpdateSettingsInput) (models.HostelSetting, error) {
	var setting models.HostelSetting
	err := s.DB.First(&setting).Error
	missing := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !missing {
		return models.HostelSetting{}, fmt.Errorf("fetch settings: %w", err)
	}
	if missing {
		setting = models.DefaultHostelSettings()
	}

	if input.PaymentGracePeriod != nil {
		setting.PaymentGracePeriod = *input.PaymentGracePeriod
	}
	if input.AutoRevokeUnpaidAllocations != nil {
		setting.AutoRevokeUnpaidAllocations = *input.AutoRevokeUnpaidAllocations
	}
	if input.MaxRoomCapacity != nil {
		setting.MaxRoomCapacity = *input.MaxRoomCapacity
	}
	if input.AllowMixedGender != nil {
		setting.AllowMixedGender = *input.AllowMixedGender
	}
	if input.AllowRoomChanges != nil {
		setting.AllowRoomChanges = *input.AllowRoomChanges
	}

	if missing {
		if err := s.DB.Create(&setting).Error; err != nil {
			return models.HostelSetting{}, fmt.Errorf("create settings: %w", err)
		}
		return setting, nil
	}
	if err := s.DB.Save(&setting).Error; err != nil {
		return models.HostelSetting{}, fmt.Errorf("save settings: %w", err)
	}
	return setting, nil
}
