package service

import (
	"urban-explorer/database"
	"urban-explorer/database/model"

	"gorm.io/gorm"
)

// SettingService manages the singleton sign-up gate row.
type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// GetAllowSignup reads the gate with first-row-or-default-true semantics.
func (s *SettingService) GetAllowSignup() (bool, error) {
	setting := &model.Setting{}
	err := s.db.First(setting).Error
	if database.IsNotFound(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return setting.AllowSignup, nil
}

// SetAllowSignup upserts the singleton row, so no matter how many times the
// gate is toggled exactly one row exists.
func (s *SettingService) SetAllowSignup(allow bool) (*model.Setting, error) {
	setting := &model.Setting{}
	err := s.db.First(setting).Error
	if database.IsNotFound(err) {
		setting = &model.Setting{AllowSignup: allow}
		if err := s.db.Create(setting).Error; err != nil {
			return nil, err
		}
		return setting, nil
	}
	if err != nil {
		return nil, err
	}
	setting.AllowSignup = allow
	if err := s.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
