package console

import (
	"errors"

	"gorm.io/gorm"
)

func GetActiveStudios(db *gorm.DB) ([]Studio, error) {
	var studios []Studio
	err := db.Where("deactivated = ?", false).Order("code").Find(&studios).Error
	return studios, err
}

func FindStudioByDomain(db *gorm.DB, domain string) (*Studio, error) {
	var studio Studio
	err := db.Where(&Studio{Domain: domain}).First(&studio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	return &studio, err
}
